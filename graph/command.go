// SPDX-License-Identifier: EPL-2.0

package graph

import "fmt"

// NodeID identifies a unit within a graph. IDs are never reused.
type NodeID uint64

// GraphIO is the pseudo node standing for the graph's own input channels
// (when used as a connection source) or output channels (as a destination).
const GraphIO NodeID = 0

// Endpoint addresses one port of a node, or one graph channel when Node is
// GraphIO.
type Endpoint struct {
	Node NodeID
	Port int
}

// Input is graph input channel ch, usable as a connection source.
func Input(ch int) Endpoint { return Endpoint{Node: GraphIO, Port: ch} }

// Output is graph output channel ch, usable as a connection destination.
func Output(ch int) Endpoint { return Endpoint{Node: GraphIO, Port: ch} }

// Port is port p of node id.
func Port(id NodeID, p int) Endpoint { return Endpoint{Node: id, Port: p} }

func (e Endpoint) String() string {
	if e.Node == GraphIO {
		return fmt.Sprintf("graph:%d", e.Port)
	}
	return fmt.Sprintf("%d:%d", e.Node, e.Port)
}

// Op is the kind of a Command.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpRemove
	OpConnect
	OpDisconnect
	OpSetParam
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpConnect:
		return "connect"
	case OpDisconnect:
		return "disconnect"
	case OpSetParam:
		return "set"
	default:
		return "unknown"
	}
}

// Command is one graph edit. Commands are plain values so they can travel
// through a control.Queue.
type Command struct {
	Op    Op
	Node  NodeID
	Unit  Unit
	From  Endpoint
	To    Endpoint
	Param string
	Value float32
}

func Add(id NodeID, u Unit) Command { return Command{Op: OpAdd, Node: id, Unit: u} }

func Remove(id NodeID) Command { return Command{Op: OpRemove, Node: id} }

func Connect(from, to Endpoint) Command { return Command{Op: OpConnect, From: from, To: to} }

func Disconnect(from, to Endpoint) Command { return Command{Op: OpDisconnect, From: from, To: to} }

func SetParam(id NodeID, name string, v float32) Command {
	return Command{Op: OpSetParam, Node: id, Param: name, Value: v}
}

func (c Command) String() string {
	switch c.Op {
	case OpAdd:
		name := "<nil>"
		if c.Unit != nil {
			name = c.Unit.Name()
		}
		return fmt.Sprintf("add %d (%s)", c.Node, name)
	case OpRemove:
		return fmt.Sprintf("remove %d", c.Node)
	case OpConnect, OpDisconnect:
		return fmt.Sprintf("%s %s -> %s", c.Op, c.From, c.To)
	case OpSetParam:
		return fmt.Sprintf("set %d.%s = %g", c.Node, c.Param, c.Value)
	default:
		return fmt.Sprintf("op(%d)", c.Op)
	}
}

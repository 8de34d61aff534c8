package maelstrom

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MaxMessageSize is the longest input line the node accepts, in bytes.
const MaxMessageSize = 16 << 20

// Node represents a single node in the network. It answers requests one at a
// time, in the order they are read.
type Node struct {
	handlers map[string]HandlerFunc

	// Response types the node accepts and discards.
	acks mapset.Set[string]

	// Stdin is for reading messages in from the Maelstrom network.
	Stdin io.Reader

	// Stdout is for writing messages out to the Maelstrom network.
	Stdout io.Writer

	// Logger receives diagnostics. Defaults to STDERR.
	Logger *log.Logger
}

// NewNode returns a new instance of Node connected to STDIN/STDOUT with the
// "init" handler registered.
func NewNode() *Node {
	n := &Node{
		handlers: make(map[string]HandlerFunc),
		acks:     mapset.NewSet(TypeInitOK, TypeEchoOK),

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Logger: log.New(os.Stderr, "", log.LstdFlags),
	}
	n.Handle(TypeInit, n.handleInit)
	return n
}

// Handle registers a message handler for a given message type. Will panic if
// registering multiple handlers for the same message type.
func (n *Node) Handle(typ string, fn HandlerFunc) {
	if _, ok := n.handlers[typ]; ok {
		panic(fmt.Sprintf("duplicate message handler for %q message type", typ))
	}
	n.handlers[typ] = fn
}

// Types returns the sorted list of message types the node accepts, handled
// and acknowledged alike.
func (n *Node) Types() []string {
	types := append(maps.Keys(n.handlers), n.acks.ToSlice()...)
	slices.Sort(types)
	return types
}

// Run executes the main event handling loop. It reads in messages from STDIN
// and delegates them to the appropriate registered handler. Returns nil once
// STDIN is exhausted, or the first error that stops the loop.
func (n *Node) Run() error {
	scanner := bufio.NewScanner(n.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxMessageSize)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		msg, err := DecodeMessage(line)
		if err != nil {
			return fmt.Errorf("line %d: unmarshal message: %w", lineNo, err)
		}
		n.Logger.Printf("Received %s", msg)

		if err := n.handle(msg); err != nil {
			return fmt.Errorf("line %d: handle %s: %w", lineNo, msg.Body.Type(), err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	return nil
}

// handle sends msg to its handler. Acknowledgements are dropped.
func (n *Node) handle(msg Message) error {
	typ := msg.Body.Type()
	if n.acks.Contains(typ) {
		return nil
	}

	h := n.handlers[typ]
	if h == nil {
		return NewRPCError(NotSupported, fmt.Sprintf("no handler for %q, accepted types: %v", typ, n.Types()))
	}
	return h(msg)
}

func (n *Node) handleInit(msg Message) error {
	body := msg.Body.(InitBody)

	if !lo.Contains(body.NodeIDs, body.NodeID) {
		n.Logger.Printf("WARN node %s is not in node_ids %v", body.NodeID, body.NodeIDs)
	}
	n.Logger.Printf("Node %s initialized, peers: %v", body.NodeID, lo.Without(body.NodeIDs, body.NodeID))

	return n.Reply(msg, InitOKBody{InReplyTo: body.MsgID})
}

// Reply sends body back to the sender of req. The reply is addressed from
// whichever node req was sent to.
func (n *Node) Reply(req Message, body Body) error {
	return n.Send(Message{
		Src:  req.Dest,
		Dest: req.Src,
		Body: body,
	})
}

// Send writes msg to STDOUT as a single line of JSON.
func (n *Node) Send(msg Message) error {
	buf, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if _, err := n.Stdout.Write(buf); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	n.Logger.Printf("Sent %s", bytes.TrimSuffix(buf, []byte{'\n'}))
	return nil
}

// HandlerFunc is the function signature for a message handler.
type HandlerFunc func(msg Message) error

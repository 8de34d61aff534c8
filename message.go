package maelstrom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Message body types.
const (
	TypeInit   = "init"
	TypeInitOK = "init_ok"
	TypeEcho   = "echo"
	TypeEchoOK = "echo_ok"
)

// Message represents a message sent from Src node to Dest node.
type Message struct {
	Src  string
	Dest string
	Body Body
}

// String returns the JSON representation of the message.
func (m Message) String() string {
	buf, err := marshal(m)
	if err != nil {
		return fmt.Sprintf("Message(%s -> %s, %#v)", m.Src, m.Dest, m.Body)
	}
	return string(buf)
}

// Body is the payload of a message. It is one of InitBody, InitOKBody,
// EchoBody or EchoOKBody.
type Body interface {
	// Type returns the value of the "type" discriminant.
	Type() string

	isBody()
}

// InitBody represents the message body for the "init" message.
type InitBody struct {
	MsgID   uint64
	NodeID  string
	NodeIDs []string
}

// InitOKBody represents the message body for the "init_ok" message.
type InitOKBody struct {
	InReplyTo uint64
}

// EchoBody represents the message body for the "echo" message.
type EchoBody struct {
	MsgID uint64
	Echo  string
}

// EchoOKBody represents the message body for the "echo_ok" message.
type EchoOKBody struct {
	MsgID     uint64
	InReplyTo uint64
	Echo      string
}

func (InitBody) Type() string   { return TypeInit }
func (InitOKBody) Type() string { return TypeInitOK }
func (EchoBody) Type() string   { return TypeEcho }
func (EchoOKBody) Type() string { return TypeEchoOK }

func (InitBody) isBody()   {}
func (InitOKBody) isBody() {}
func (EchoBody) isBody()   {}
func (EchoOKBody) isBody() {}

// Wire representations. Field order here is the order keys are written in.
type (
	initBodyJSON struct {
		Type    string    `json:"type"`
		MsgID   *uint64   `json:"msg_id"`
		NodeID  *string   `json:"node_id"`
		NodeIDs *[]string `json:"node_ids"`
	}
	initOKBodyJSON struct {
		Type      string  `json:"type"`
		InReplyTo *uint64 `json:"in_reply_to"`
	}
	echoBodyJSON struct {
		Type  string  `json:"type"`
		MsgID *uint64 `json:"msg_id"`
		Echo  *string `json:"echo"`
	}
	echoOKBodyJSON struct {
		Type      string  `json:"type"`
		MsgID     *uint64 `json:"msg_id"`
		InReplyTo *uint64 `json:"in_reply_to"`
		Echo      *string `json:"echo"`
	}
)

// MarshalJSON marshals the body with its "type" key first.
func (b InitBody) MarshalJSON() ([]byte, error) {
	nodeIDs := b.NodeIDs
	if nodeIDs == nil {
		nodeIDs = []string{}
	}
	return marshal(initBodyJSON{Type: TypeInit, MsgID: &b.MsgID, NodeID: &b.NodeID, NodeIDs: &nodeIDs})
}

// MarshalJSON marshals the body with its "type" key first.
func (b InitOKBody) MarshalJSON() ([]byte, error) {
	return marshal(initOKBodyJSON{Type: TypeInitOK, InReplyTo: &b.InReplyTo})
}

// MarshalJSON marshals the body with its "type" key first.
func (b EchoBody) MarshalJSON() ([]byte, error) {
	return marshal(echoBodyJSON{Type: TypeEcho, MsgID: &b.MsgID, Echo: &b.Echo})
}

// MarshalJSON marshals the body with its "type" key first.
func (b EchoOKBody) MarshalJSON() ([]byte, error) {
	return marshal(echoOKBodyJSON{Type: TypeEchoOK, MsgID: &b.MsgID, InReplyTo: &b.InReplyTo, Echo: &b.Echo})
}

// messageJSON is the wire form of Message. Every key is always written.
type messageJSON struct {
	Src  *string         `json:"src"`
	Dest *string         `json:"dest"`
	Body json.RawMessage `json:"body"`
}

// MarshalJSON marshals the message into a single compact JSON object.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Body == nil {
		return nil, NewRPCError(Crash, "message has no body")
	}
	body, err := marshal(m.Body)
	if err != nil {
		return nil, err
	}
	return marshal(messageJSON{Src: &m.Src, Dest: &m.Dest, Body: body})
}

// UnmarshalJSON parses a message and its body. Unknown body types and
// missing required fields are errors; unknown extra keys are ignored.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Src == nil:
		return errMissingField("src")
	case raw.Dest == nil:
		return errMissingField("dest")
	case len(raw.Body) == 0:
		return errMissingField("body")
	}

	body, err := unmarshalBody(raw.Body)
	if err != nil {
		return fmt.Errorf("body: %w", err)
	}

	m.Src, m.Dest, m.Body = *raw.Src, *raw.Dest, body
	return nil
}

// DecodeMessage parses a single JSON-encoded message. Input must be valid
// UTF-8. All failures are returned as an *RPCError with a MalformedRequest code.
func DecodeMessage(data []byte) (Message, error) {
	if !utf8.Valid(data) {
		return Message{}, NewRPCError(MalformedRequest, "invalid UTF-8")
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, NewRPCError(MalformedRequest, err.Error())
	} else if msg.Body == nil {
		return Message{}, NewRPCError(MalformedRequest, "message is null")
	}
	return msg, nil
}

// EncodeMessage marshals msg into a single line of JSON, including the
// trailing newline. Failures are returned as an *RPCError with a Crash code.
func EncodeMessage(msg Message) ([]byte, error) {
	buf, err := marshal(msg)
	if err != nil {
		if ErrorCode(err) != -1 {
			return nil, err
		}
		return nil, NewRPCError(Crash, err.Error())
	}
	return append(buf, '\n'), nil
}

func unmarshalBody(data []byte) (Body, error) {
	var probe struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	} else if probe.Type == nil {
		return nil, errMissingField("type")
	}

	switch typ := *probe.Type; typ {
	case TypeInit:
		var v initBodyJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		switch {
		case v.MsgID == nil:
			return nil, errMissingField("msg_id")
		case v.NodeID == nil:
			return nil, errMissingField("node_id")
		case v.NodeIDs == nil:
			return nil, errMissingField("node_ids")
		}
		body := InitBody{MsgID: *v.MsgID, NodeID: *v.NodeID}
		if len(*v.NodeIDs) > 0 {
			body.NodeIDs = *v.NodeIDs
		}
		return body, nil

	case TypeInitOK:
		var v initOKBodyJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		} else if v.InReplyTo == nil {
			return nil, errMissingField("in_reply_to")
		}
		return InitOKBody{InReplyTo: *v.InReplyTo}, nil

	case TypeEcho:
		var v echoBodyJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		switch {
		case v.MsgID == nil:
			return nil, errMissingField("msg_id")
		case v.Echo == nil:
			return nil, errMissingField("echo")
		}
		return EchoBody{MsgID: *v.MsgID, Echo: *v.Echo}, nil

	case TypeEchoOK:
		var v echoOKBodyJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		switch {
		case v.MsgID == nil:
			return nil, errMissingField("msg_id")
		case v.InReplyTo == nil:
			return nil, errMissingField("in_reply_to")
		case v.Echo == nil:
			return nil, errMissingField("echo")
		}
		return EchoOKBody{MsgID: *v.MsgID, InReplyTo: *v.InReplyTo, Echo: *v.Echo}, nil

	default:
		return nil, fmt.Errorf("unknown message type %q", typ)
	}
}

func errMissingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}

// marshal is json.Marshal without HTML escaping and without the trailing
// newline added by json.Encoder.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

package maelstrom

// HandleEcho registers the "echo" handler on n. Each echo request is answered
// with an echo_ok carrying the same text, and the request's msg_id as both
// msg_id and in_reply_to.
func (n *Node) HandleEcho() {
	n.Handle(TypeEcho, func(msg Message) error {
		body := msg.Body.(EchoBody)
		return n.Reply(msg, EchoOKBody{
			MsgID:     body.MsgID,
			InReplyTo: body.MsgID,
			Echo:      body.Echo,
		})
	})
}

package maelstrom_test

import (
	"testing"
)

func TestNode_HandleEcho(t *testing.T) {
	for _, tt := range []struct {
		name string
		req  string
		resp string
	}{
		{
			name: "Hello",
			req:  `{"src":"n1","dest":"n2","body":{"type":"echo","msg_id":1,"echo":"hello"}}`,
			resp: `{"src":"n2","dest":"n1","body":{"type":"echo_ok","msg_id":1,"in_reply_to":1,"echo":"hello"}}`,
		},
		{
			name: "EmptyText",
			req:  `{"src":"c4","dest":"n3","body":{"type":"echo","msg_id":77,"echo":""}}`,
			resp: `{"src":"n3","dest":"c4","body":{"type":"echo_ok","msg_id":77,"in_reply_to":77,"echo":""}}`,
		},
		{
			name: "Unicode",
			req:  `{"src":"c1","dest":"n1","body":{"type":"echo","msg_id":5,"echo":"été ☀"}}`,
			resp: `{"src":"n1","dest":"c1","body":{"type":"echo_ok","msg_id":5,"in_reply_to":5,"echo":"été ☀"}}`,
		},
		{
			name: "Whitespace",
			req:  ` { "src" : "c1", "dest" : "n1", "body" : { "echo" : "a b", "msg_id" : 6, "type" : "echo" } } `,
			resp: `{"src":"n1","dest":"c1","body":{"type":"echo_ok","msg_id":6,"in_reply_to":6,"echo":"a b"}}`,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			stdout, err := runNode(t, tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := stdout, tt.resp+"\n"; got != want {
				t.Fatalf("stdout=%s, want %s", got, want)
			}
		})
	}
}

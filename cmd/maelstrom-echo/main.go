// Command maelstrom-echo is a Maelstrom node that answers init and echo
// requests on STDIN/STDOUT.
package main

import (
	"io"
	"log"
	"os"

	maelstrom "github.com/maelstrom-nodes/echo"
)

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// run serves messages from stdin until it is exhausted. Returns the first
// configuration or protocol error.
func run(stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n := maelstrom.NewNode()
	n.Stdin = stdin
	n.Stdout = stdout
	n.Logger = cfg.logger(stderr)
	n.HandleEcho()

	return n.Run()
}

// Command redis-lite-cli is a thin client for a redis-lite server: either
// a one-shot subcommand (ping/get/set) or, invoked with no subcommand, an
// interactive REPL.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"redis-lite/client"
)

func main() {
	host := flag.String("host", "127.0.0.1", "server address")
	port := flag.Int("port", 6379, "server port")
	flag.Parse()

	addr := fmt.Sprintf("%s:%d", *host, *port)
	cl, err := client.Connect(addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "redis-lite-cli:", err)
		os.Exit(1)
	}
	defer cl.Close()

	args := flag.Args()
	if len(args) == 0 {
		repl(cl)
		return
	}
	if err := runOnce(cl, args); err != nil {
		fmt.Fprintln(os.Stderr, "redis-lite-cli:", err)
		os.Exit(1)
	}
}

func runOnce(cl *client.Client, args []string) error {
	switch strings.ToLower(args[0]) {
	case "ping":
		var msg []byte
		if len(args) > 1 {
			msg = []byte(args[1])
		}
		reply, err := cl.Ping(msg)
		if err != nil {
			return err
		}
		fmt.Println(string(reply))
		return nil
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: get <key>")
		}
		v, ok, err := cl.Get(args[1])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("(nil)")
			return nil
		}
		fmt.Println(string(v))
		return nil
	case "set":
		return runSet(cl, args[1:])
	default:
		return fmt.Errorf("unrecognized subcommand %q", args[0])
	}
}

func runSet(cl *client.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: set <key> <value> [ex|px <n>]")
	}
	key, value := args[0], []byte(args[1])
	if len(args) == 2 {
		return cl.Set(key, value)
	}
	if len(args) != 4 {
		return fmt.Errorf("usage: set <key> <value> [ex|px <n>]")
	}
	n, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ttl %q: %w", args[3], err)
	}
	switch strings.ToLower(args[2]) {
	case "ex":
		return cl.SetExpires(key, value, time.Duration(n)*time.Second)
	case "px":
		return cl.SetExpires(key, value, time.Duration(n)*time.Millisecond)
	default:
		return fmt.Errorf("unrecognized ttl option %q, want ex or px", args[2])
	}
}

// repl runs an interactive prompt, reading one request per line and
// printing its reply.
func repl(cl *client.Client) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("redis-lite-cli> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := runOnce(cl, strings.Fields(line)); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

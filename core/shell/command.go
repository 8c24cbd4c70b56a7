package shell

import (
	"context"

	"github.com/abiosoft/ishell"
)

// RunShell blocks on an interactive cart shell.
func RunShell(sc *Cart) {
	shell := ishell.New()
	shell.Println("Cart Interactive Shell 0.1")
	shell.Println("session " + sc.Identity.SessionID)

	ctx := context.Background()
	reply := func(c *ishell.Context, out string, err error) {
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(out)
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "login",
		Help: "login <user_id>, work on a signed user's cart",
		Func: func(c *ishell.Context) {
			out, err := sc.Login(c.Args)
			reply(c, out, err)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "logout",
		Help: "back to the guest cart",
		Func: func(c *ishell.Context) {
			c.Println(sc.Logout())
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "add",
		Help: "add <id> <price> [quantity] [name...]",
		Func: func(c *ishell.Context) {
			out, err := sc.Add(ctx, c.Args)
			reply(c, out, err)
		},
	})
	for _, op := range []string{"inc", "dec"} {
		op := op
		shell.AddCmd(&ishell.Cmd{
			Name: op,
			Help: op + " <id> [quantity]",
			Func: func(c *ishell.Context) {
				out, err := sc.Change(ctx, op, c.Args)
				reply(c, out, err)
			},
		})
	}
	shell.AddCmd(&ishell.Cmd{
		Name: "remove",
		Help: "remove <id>",
		Func: func(c *ishell.Context) {
			out, err := sc.Remove(ctx, c.Args)
			reply(c, out, err)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "clear",
		Help: "empty the cart",
		Func: func(c *ishell.Context) {
			out, err := sc.Clear(ctx)
			reply(c, out, err)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "list",
		Help: "items, count and total",
		Func: func(c *ishell.Context) {
			out, err := sc.List(ctx)
			reply(c, out, err)
		},
	})

	shell.Run()
}

// Package cli implements the taskctl subcommands on top of the API
// client.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tasktrack/internal/client"
	"tasktrack/internal/domain"
	"tasktrack/internal/service"
)

const dueLayout = "2006-01-02 15:04"

// Run dispatches subcommands and returns an exit code (0 ok, 1 error,
// 2 usage).
func Run(c *client.Client, owner string, args []string) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]
	ctx := context.Background()

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "register":
		return doRegister(ctx, c, owner, a)
	case "login":
		return doLogin(ctx, c, owner, a)
	case "add":
		return doAdd(ctx, c, owner, a)
	case "ls":
		return doList(ctx, c, owner, a)
	case "get":
		return withID(a, "get", func(id int64) int { return doGet(ctx, c, owner, id) })
	case "done":
		return withID(a, "done", func(id int64) int { return doSetCompleted(ctx, c, owner, id, true) })
	case "undone":
		return withID(a, "undone", func(id int64) int { return doSetCompleted(ctx, c, owner, id, false) })
	case "edit":
		return doEdit(ctx, c, owner, a)
	case "rm":
		return withID(a, "rm", func(id int64) int { return doRemove(ctx, c, owner, id) })
	}

	fail("unknown subcommand: " + cmd)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`taskctl - task tracker CLI

Usage:
  taskctl -user <name> <subcommand> [args]

Subcommands:
  register -password <pw>          Create the account
  login -password <pw>             Check credentials and print a token
  add <title...> [-tags t] [-due "2006-01-02 15:04"]
  ls [-query q] [-completed true|false]
  get <id>                         Show one task
  done <id> / undone <id>          Set or clear the completed flag
  edit <id> [-title t] [-tags t] [-due "..."]
  rm <id>                          Delete a task

Examples:
  taskctl -user alice add "Buy milk" -tags errands
  taskctl -user alice ls -query milk -completed false
`)
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
}

func withID(args []string, cmd string, fn func(id int64) int) int {
	if len(args) < 1 {
		fail("usage: taskctl " + cmd + " <id>")
		return 2
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail(cmd + ": not a number: " + args[0])
		return 2
	}
	return fn(id)
}

func passwordFlag(name string, args []string) (string, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	pw := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	if *pw == "" {
		return "", nil, fmt.Errorf("usage: taskctl %s -password <pw>", name)
	}
	return *pw, fs.Args(), nil
}

func doRegister(ctx context.Context, c *client.Client, owner string, args []string) int {
	pw, _, err := passwordFlag("register", args)
	if err != nil {
		fail(err.Error())
		return 2
	}
	if err := c.Register(ctx, owner, pw); err != nil {
		fail(err.Error())
		return 1
	}
	fmt.Println("registered", owner)
	return 0
}

func doLogin(ctx context.Context, c *client.Client, owner string, args []string) int {
	pw, _, err := passwordFlag("login", args)
	if err != nil {
		fail(err.Error())
		return 2
	}
	if err := c.Login(ctx, owner, pw); err != nil {
		fail(err.Error())
		return 1
	}
	fmt.Println(c.Token)
	return 0
}

func doAdd(ctx context.Context, c *client.Client, owner string, args []string) int {
	// collect the title from leading positionals so flags can trail it
	var words []string
	for len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		words = append(words, args[0])
		args = args[1:]
	}

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	tags := fs.String("tags", "", "comma-separated tags")
	due := fs.String("due", "", "due date, e.g. 2025-11-01 15:30")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		fail("usage: taskctl add <title...>")
		return 2
	}

	in := service.TaskCreate{Title: title, Tags: *tags}
	if *due != "" {
		d, err := time.ParseInLocation(dueLayout, *due, time.Local)
		if err != nil {
			fail("invalid due date, use format 2006-01-02 15:04")
			return 2
		}
		in.DueDate = &d
	}

	t, err := c.CreateTask(ctx, owner, in)
	if err != nil {
		fail(err.Error())
		return 1
	}
	fmt.Printf("added task %d\n", t.ID)
	return 0
}

func doList(ctx context.Context, c *client.Client, owner string, args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	query := fs.String("query", "", "substring to match in title or tags")
	completed := fs.String("completed", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	f := domain.TaskFilter{Query: *query}
	if *completed != "" {
		b, err := strconv.ParseBool(*completed)
		if err != nil {
			fail("ls: -completed must be true or false")
			return 2
		}
		f.Completed = &b
	}

	tasks, err := c.ListTasks(ctx, owner, f)
	if err != nil {
		fail(err.Error())
		return 1
	}
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return 0
	}
	for _, t := range tasks {
		fmt.Println(formatTask(&t))
	}
	return 0
}

func doGet(ctx context.Context, c *client.Client, owner string, id int64) int {
	t, err := c.GetTask(ctx, owner, id)
	if err != nil {
		fail(err.Error())
		return 1
	}
	fmt.Println(formatTask(t))
	return 0
}

func doSetCompleted(ctx context.Context, c *client.Client, owner string, id int64, completed bool) int {
	t, err := c.UpdateTask(ctx, owner, id, domain.TaskPatch{Completed: &completed})
	if err != nil {
		fail(err.Error())
		return 1
	}
	fmt.Println(formatTask(t))
	return 0
}

func doEdit(ctx context.Context, c *client.Client, owner string, args []string) int {
	if len(args) < 1 {
		fail("usage: taskctl edit <id> [-title t] [-tags t] [-due \"...\"]")
		return 2
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("edit: not a number: " + args[0])
		return 2
	}

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	tags := fs.String("tags", "", "new tags")
	due := fs.String("due", "", "new due date")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	var patch domain.TaskPatch
	if *title != "" {
		patch.Title = title
	}
	if *tags != "" {
		patch.Tags = tags
	}
	if *due != "" {
		d, err := time.ParseInLocation(dueLayout, *due, time.Local)
		if err != nil {
			fail("invalid due date, use format 2006-01-02 15:04")
			return 2
		}
		patch.DueDate = &d
	}

	t, err := c.UpdateTask(ctx, owner, id, patch)
	if err != nil {
		fail(err.Error())
		return 1
	}
	fmt.Println(formatTask(t))
	return 0
}

func doRemove(ctx context.Context, c *client.Client, owner string, id int64) int {
	if err := c.DeleteTask(ctx, owner, id); err != nil {
		fail(err.Error())
		return 1
	}
	fmt.Printf("removed task %d\n", id)
	return 0
}

func formatTask(t *domain.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%3d %s %s", t.ID, box, t.Title)
	if t.Tags != "" {
		line += "  #" + t.Tags
	}
	if t.DueDate != nil {
		line += "  due " + t.DueDate.Local().Format(dueLayout)
	}
	return line
}

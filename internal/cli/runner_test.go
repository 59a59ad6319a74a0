package cli_test

import (
	"net/http/httptest"
	"testing"

	"tasktrack/internal/auth"
	"tasktrack/internal/cli"
	"tasktrack/internal/client"
	"tasktrack/internal/config"
	apihttp "tasktrack/internal/http"
	"tasktrack/internal/http/handlers"
	"tasktrack/internal/service"
	"tasktrack/internal/store/memstore"
	"tasktrack/internal/ws"

	"github.com/gin-gonic/gin"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.InitJWT("cli-test-secret")

	hub := ws.NewHub()
	tasks := service.NewTaskService(memstore.NewTasks())
	users := service.NewUserService(memstore.NewUsers(), 4)
	h := handlers.NewHandler(tasks, users)

	r := gin.New()
	apihttp.RegisterAPIRoutes(r, h, hub, &config.Config{})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestRunLifecycle(t *testing.T) {
	c := newTestClient(t)

	steps := []struct {
		name string
		args []string
		want int
	}{
		{name: "register", args: []string{"register", "-password", "secret1"}, want: 0},
		{name: "login", args: []string{"login", "-password", "secret1"}, want: 0},
		{name: "add", args: []string{"add", "buy", "milk", "-tags", "errands"}, want: 0},
		{name: "ls", args: []string{"ls"}, want: 0},
		{name: "ls filtered", args: []string{"ls", "-query", "milk", "-completed", "false"}, want: 0},
		{name: "get", args: []string{"get", "1"}, want: 0},
		{name: "done", args: []string{"done", "1"}, want: 0},
		{name: "undone", args: []string{"undone", "1"}, want: 0},
		{name: "edit", args: []string{"edit", "1", "-title", "buy oat milk"}, want: 0},
		{name: "rm", args: []string{"rm", "1"}, want: 0},
		{name: "rm again", args: []string{"rm", "1"}, want: 1},
	}

	for _, s := range steps {
		if got := cli.Run(c, "alice", s.args); got != s.want {
			t.Fatalf("%s: exit = %d, want %d", s.name, got, s.want)
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	c := newTestClient(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no args", args: nil, want: 2},
		{name: "unknown subcommand", args: []string{"frobnicate"}, want: 2},
		{name: "help", args: []string{"help"}, want: 0},
		{name: "add without title", args: []string{"add"}, want: 2},
		{name: "get without id", args: []string{"get"}, want: 2},
		{name: "get non-numeric id", args: []string{"get", "abc"}, want: 2},
		{name: "register without password", args: []string{"register"}, want: 2},
		{name: "bad due date", args: []string{"add", "x", "-due", "someday"}, want: 2},
		{name: "bad completed flag", args: []string{"ls", "-completed", "maybe"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cli.Run(c, "alice", tt.args); got != tt.want {
				t.Errorf("exit = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunAPIErrors(t *testing.T) {
	c := newTestClient(t)

	// login before any account exists
	if got := cli.Run(c, "alice", []string{"login", "-password", "secret1"}); got != 1 {
		t.Errorf("login without account: exit = %d, want 1", got)
	}

	// get of an absent task
	if got := cli.Run(c, "alice", []string{"get", "99"}); got != 1 {
		t.Errorf("get absent: exit = %d, want 1", got)
	}

	// duplicate registration
	if got := cli.Run(c, "alice", []string{"register", "-password", "secret1"}); got != 0 {
		t.Fatalf("register: exit = %d, want 0", got)
	}
	if got := cli.Run(c, "alice", []string{"register", "-password", "other99"}); got != 1 {
		t.Errorf("duplicate register: exit = %d, want 1", got)
	}
}

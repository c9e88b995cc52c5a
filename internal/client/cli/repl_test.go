package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error     { return f.record("whoami", nil) }
func (f *fakeExec) Unregister(ctx context.Context) error { return f.record("unregister", nil) }
func (f *fakeExec) Book(ctx context.Context, args []string) error {
	return f.record("book", args)
}
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Reviews(ctx context.Context, args []string) error {
	return f.record("reviews", args)
}
func (f *fakeExec) Review(ctx context.Context, args []string) error {
	return f.record("review", args)
}
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}

func silencePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommandsWithArgs(t *testing.T) {
	silencePrint(t)

	input := strings.Join([]string{
		"help",
		"login",
		"search the  hobbit",
		"book #2",
		"reviews mine",
		"review #1",
		"edit review-1",
		"delete review-1",
		"whoami",
		"logout",
		"exit",
		"register",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "search", "book", "reviews", "review", "edit", "delete", "whoami", "logout"}, exec.calls)
	assert.Equal(t, []string{"the", "hobbit"}, exec.args[1])
	assert.Equal(t, []string{"#2"}, exec.args[2])
	assert.Equal(t, []string{"mine"}, exec.args[3])
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\n")))

	assert.Contains(t, *lines, helpAnonymous)
	assert.Contains(t, *lines, helpLoggedIn)
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	lines := silencePrint(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("\nfoobar\nquit\nwhoami\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("reviews")))

	assert.Equal(t, []string{"reviews"}, exec.calls)
}

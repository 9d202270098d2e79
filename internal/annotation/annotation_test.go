package annotation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/zurustar/tasklogger/internal/logging"
)

type logLine struct {
	level  string
	msg    string
	fields []logging.Field
}

// recordingLogger implements logging.Logger and keeps every line in order
type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (r *recordingLogger) record(level, msg string, fields []logging.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, logLine{level: level, msg: msg, fields: fields})
}

func (r *recordingLogger) Debug(msg string, fields ...logging.Field) { r.record("DEBUG", msg, fields) }
func (r *recordingLogger) Info(msg string, fields ...logging.Field)  { r.record("INFO", msg, fields) }
func (r *recordingLogger) Warn(msg string, fields ...logging.Field)  { r.record("WARN", msg, fields) }
func (r *recordingLogger) Error(msg string, fields ...logging.Field) { r.record("ERROR", msg, fields) }

func (r *recordingLogger) all() []logLine {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]logLine, len(r.lines))
	copy(out, r.lines)
	return out
}

func (r *recordingLogger) count(level string) int {
	n := 0
	for _, l := range r.all() {
		if l.level == level {
			n++
		}
	}
	return n
}

func newTestWeaver(severity Severity) (*Weaver, *recordingLogger) {
	logger := &recordingLogger{}
	config := NewLoggingConfig(severity)
	dispatcher := NewDispatcher(logger)
	return NewWeaver(NewRequestInterceptor(config, dispatcher), NewResponseInterceptor(config, dispatcher)), logger
}

func TestResolveSeverity(t *testing.T) {
	tests := []struct {
		raw      string
		expected Severity
		warnings int
	}{
		{"DEBUG", SeverityDebug, 0},
		{"info", SeverityInfo, 0},
		{"warn", SeverityWarn, 0},
		{"Error", SeverityError, 0},
		{"verbose", SeverityInfo, 1},
		{"WARNING", SeverityInfo, 1},
		{"", SeverityInfo, 1},
		{"   ", SeverityInfo, 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			logger := &recordingLogger{}
			got := ResolveSeverity(tt.raw, SeverityInfo, AllSeverities(), logger)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if n := logger.count("WARN"); n != tt.warnings {
				t.Errorf("Expected %d warnings, got %d", tt.warnings, n)
			}
			if len(logger.all()) != tt.warnings {
				t.Errorf("Expected only warning lines, got %+v", logger.all())
			}
		})
	}
}

func TestResolveSeverity_WarningContent(t *testing.T) {
	logger := &recordingLogger{}
	ResolveSeverity("verbose", SeverityInfo, AllSeverities(), logger)

	msg := logger.all()[0].msg
	for _, part := range []string{`"verbose"`, "DEBUG, INFO, WARN, ERROR", "default INFO"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Expected warning to contain %q, got: %s", part, msg)
		}
	}

	logger = &recordingLogger{}
	ResolveSeverity("", SeverityInfo, AllSeverities(), logger)
	if msg := logger.all()[0].msg; !strings.Contains(msg, "No value provided") {
		t.Errorf("Expected missing-value warning, got: %s", msg)
	}
}

func TestResolveSeverity_RestrictedAllowedSet(t *testing.T) {
	logger := &recordingLogger{}
	got := ResolveSeverity("debug", SeverityWarn, []Severity{SeverityWarn, SeverityError}, logger)
	if got != SeverityWarn {
		t.Errorf("Expected default WARN for disallowed value, got %v", got)
	}
	if logger.count("WARN") != 1 {
		t.Errorf("Expected one warning")
	}
}

func TestResolveSeverity_Idempotent(t *testing.T) {
	for _, raw := range []string{"warn", "nope", ""} {
		first := ResolveSeverity(raw, SeverityInfo, AllSeverities(), &recordingLogger{})
		second := ResolveSeverity(raw, SeverityInfo, AllSeverities(), &recordingLogger{})
		if first != second {
			t.Errorf("Resolving %q twice gave %v and %v", raw, first, second)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	expected := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, s := range AllSeverities() {
		if s.String() != expected[i] {
			t.Errorf("Expected %s, got %s", expected[i], s.String())
		}
	}
	if Severity(42).String() != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN for out of range severity")
	}
}

func TestLoggingConfig(t *testing.T) {
	if got := NewLoggingConfig(SeverityError).CurrentSeverity(); got != SeverityError {
		t.Errorf("Expected ERROR, got %v", got)
	}
	if got := NewLoggingConfig(Severity(-1)).CurrentSeverity(); got != DefaultSeverity {
		t.Errorf("Expected out of range severity to fall back to %v, got %v", DefaultSeverity, got)
	}
}

func TestCallContext(t *testing.T) {
	args := []any{int64(1), "title"}
	req := NewRequestContext("TaskController", "GetTaskByID", args)
	if req.HasResult || req.Result != nil {
		t.Errorf("Request context must not carry a result: %+v", req)
	}

	args[0] = int64(99)
	if req.Args[0] != int64(1) {
		t.Errorf("Context args must not alias the caller's slice")
	}

	resp := NewResponseContext("TaskController", "CreateTask", nil, "ok")
	if !resp.HasResult || resp.Result != "ok" {
		t.Errorf("Response context must carry the result: %+v", resp)
	}

	empty := NewRequestContext("", "", nil)
	if empty.OwnerType != "unknown" || empty.Method != "unknown" {
		t.Errorf("Expected placeholder names, got %q.%q", empty.OwnerType, empty.Method)
	}
}

func TestFormatTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		fields   []any
		expected string
	}{
		{"all fields", "a {} b {}", []any{1, "x"}, "a 1 b x"},
		{"missing field", "a {} b {}", []any{1}, "a 1 b {}"},
		{"surplus field", "a {}", []any{1, 2}, "a 1"},
		{"nil field", "r {}", []any{nil}, "r null"},
		{"no placeholders", "plain", nil, "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTemplate(tt.template, tt.fields...); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}

	if got := FormatArgs([]any{int64(5), "x", nil}); got != "[5, x, null]" {
		t.Errorf("Unexpected args rendering: %s", got)
	}
}

func TestDispatcher_RoutesBySeverity(t *testing.T) {
	for _, s := range AllSeverities() {
		t.Run(s.String(), func(t *testing.T) {
			logger := &recordingLogger{}
			NewDispatcher(logger).Dispatch(s, "hello {}", "world")

			lines := logger.all()
			if len(lines) != 1 {
				t.Fatalf("Expected 1 line, got %d", len(lines))
			}
			if lines[0].level != s.String() {
				t.Errorf("Expected level %s, got %s", s, lines[0].level)
			}
			if lines[0].msg != "hello world" {
				t.Errorf("Unexpected message %q", lines[0].msg)
			}
		})
	}
}

func TestRequestInterceptor_LogsAtResolvedSeverity(t *testing.T) {
	w, logger := newTestWeaver(SeverityError)

	h := w.Weave("TaskController", "GetTaskByID", LogRequest, func(ctx context.Context, args []any) (any, error) {
		return "found", nil
	})

	result, err := h(context.Background(), []any{int64(7)})
	if err != nil || result != "found" {
		t.Fatalf("Unexpected result %v, %v", result, err)
	}

	if logger.count("ERROR") != 1 {
		t.Errorf("Expected exactly one ERROR line, got %+v", logger.all())
	}
	if len(logger.all()) != 1 {
		t.Errorf("Expected no lines at other levels, got %+v", logger.all())
	}

	line := logger.all()[0]
	if line.msg != "invoked operation TaskController.GetTaskByID with arguments [7]" {
		t.Errorf("Unexpected message: %s", line.msg)
	}
	if len(line.fields) != 3 {
		t.Errorf("Expected owner, method and args fields, got %+v", line.fields)
	}
}

func TestRequestInterceptor_LogsBeforeFailure(t *testing.T) {
	w, logger := newTestWeaver(SeverityInfo)
	boom := errors.New("boom")

	ran := false
	h := w.Weave("TaskController", "GetTaskByID", LogRequest, func(ctx context.Context, args []any) (any, error) {
		if len(logger.all()) != 1 {
			t.Errorf("Request line must be written before the operation runs")
		}
		ran = true
		return nil, boom
	})

	_, err := h(context.Background(), nil)
	if !ran {
		t.Fatal("Operation did not run")
	}
	if err != boom {
		t.Errorf("Expected the original error back, got %v", err)
	}
	if logger.count("INFO") != 1 {
		t.Errorf("Expected the request line to stand after failure")
	}
}

func TestResponseInterceptor_SuccessOnly(t *testing.T) {
	w, logger := newTestWeaver(SeverityWarn)
	boom := errors.New("boom")

	failing := w.Weave("TaskController", "DeleteTask", LogResponse, func(ctx context.Context, args []any) (any, error) {
		return nil, boom
	})
	if _, err := failing(context.Background(), []any{int64(1)}); err != boom {
		t.Errorf("Expected error to propagate unchanged, got %v", err)
	}
	if len(logger.all()) != 0 {
		t.Errorf("Failed call must not be logged, got %+v", logger.all())
	}

	ok := w.Weave("TaskController", "CreateTask", LogResponse, func(ctx context.Context, args []any) (any, error) {
		return "created", nil
	})
	if _, err := ok(context.Background(), []any{"dto"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := logger.all()
	if len(lines) != 1 || lines[0].level != "WARN" {
		t.Fatalf("Expected one WARN line, got %+v", lines)
	}
	if lines[0].msg != "operation TaskController.CreateTask completed with arguments [dto], result created" {
		t.Errorf("Unexpected message: %s", lines[0].msg)
	}
}

func TestWeaver_BothMarkersOrdering(t *testing.T) {
	w, logger := newTestWeaver(SeverityDebug)

	var order []string
	h := w.Weave("TaskController", "UpdateTask", LogRequest|LogResponse, func(ctx context.Context, args []any) (any, error) {
		order = append(order, "call")
		return "updated", nil
	})
	if _, err := h(context.Background(), []any{int64(1), "dto"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := logger.all()
	if len(lines) != 2 {
		t.Fatalf("Expected two lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0].msg, "invoked operation") {
		t.Errorf("First line must be the request line, got %s", lines[0].msg)
	}
	if !strings.HasPrefix(lines[1].msg, "operation TaskController.UpdateTask completed") {
		t.Errorf("Second line must be the response line, got %s", lines[1].msg)
	}
	if len(order) != 1 {
		t.Errorf("Operation must run exactly once, ran %d times", len(order))
	}
}

func TestWeaver_BothMarkersFailure(t *testing.T) {
	w, logger := newTestWeaver(SeverityInfo)
	boom := errors.New("boom")

	h := w.Weave("TaskController", "UpdateTask", LogRequest|LogResponse, func(ctx context.Context, args []any) (any, error) {
		return nil, boom
	})
	if _, err := h(context.Background(), nil); err != boom {
		t.Errorf("Expected original error, got %v", err)
	}
	if len(logger.all()) != 1 {
		t.Errorf("Expected only the request line, got %+v", logger.all())
	}
}

func TestWeaver_NoMarkers(t *testing.T) {
	for _, s := range AllSeverities() {
		w, logger := newTestWeaver(s)
		h := w.Weave("TaskController", "GetAllTasks", None, func(ctx context.Context, args []any) (any, error) {
			return "all", nil
		})
		if _, err := h(context.Background(), nil); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(logger.all()) != 0 {
			t.Errorf("Unmarked operation must not be logged at %v", s)
		}
	}
}

func TestWeaver_Disabled(t *testing.T) {
	var nilWeaver *Weaver
	for _, w := range []*Weaver{NewWeaver(nil, nil), nilWeaver} {
		if w.Enabled() {
			t.Errorf("Weaver without interceptors must be disabled")
		}
		calls := 0
		h := w.Weave("TaskController", "CreateTask", LogRequest|LogResponse, func(ctx context.Context, args []any) (any, error) {
			calls++
			return nil, nil
		})
		h(context.Background(), nil)
		if calls != 1 {
			t.Errorf("Expected operation to run once, ran %d", calls)
		}
	}
}

type taskOwner struct{}

func (taskOwner) find(ctx context.Context, id int64) (string, error) {
	if id == 0 {
		return "", errors.New("Task ID cannot be 0")
	}
	return "task", nil
}

func TestBind(t *testing.T) {
	w, logger := newTestWeaver(SeverityInfo)
	owner := TypeName(&taskOwner{})

	find := Bind1(w, owner, "find", LogRequest|LogResponse, taskOwner{}.find)
	got, err := find(context.Background(), 3)
	if err != nil || got != "task" {
		t.Fatalf("Unexpected result %q, %v", got, err)
	}
	if _, err := find(context.Background(), 0); err == nil {
		t.Errorf("Expected error for id 0")
	}

	list := Bind0(w, owner, "list", LogResponse, func(ctx context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	if items, _ := list(context.Background()); len(items) != 1 {
		t.Errorf("Unexpected list result %v", items)
	}

	update := Bind2(w, owner, "update", None, func(ctx context.Context, id int64, title string) (*string, error) {
		return &title, nil
	})
	if p, _ := update(context.Background(), 1, "t"); p == nil || *p != "t" {
		t.Errorf("Unexpected update result %v", p)
	}

	// find: request + response, find(0): request only, list: response, update: none
	lines := logger.all()
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].msg != "invoked operation taskOwner.find with arguments [3]" {
		t.Errorf("Unexpected first line: %s", lines[0].msg)
	}
	if lines[3].msg != "operation taskOwner.list completed with arguments [], result [a]" {
		t.Errorf("Unexpected last line: %s", lines[3].msg)
	}
}

func TestBind_NilResult(t *testing.T) {
	w, _ := newTestWeaver(SeverityInfo)
	fn := Bind1(w, "Owner", "Get", LogResponse, func(ctx context.Context, err error) (*string, error) {
		return nil, err
	})
	p, err := fn(context.Background(), nil)
	if p != nil || err != nil {
		t.Errorf("Expected nil pointer and nil error, got %v, %v", p, err)
	}
}

func TestTypeName(t *testing.T) {
	var nilPtr *taskOwner
	tests := []struct {
		v        any
		expected string
	}{
		{taskOwner{}, "taskOwner"},
		{&taskOwner{}, "taskOwner"},
		{nilPtr, "taskOwner"},
		{nil, "unknown"},
		{struct{}{}, "unknown"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.v); got != tt.expected {
			t.Errorf("TypeName(%T) = %q, expected %q", tt.v, got, tt.expected)
		}
	}
}

func TestMarker(t *testing.T) {
	both := LogRequest | LogResponse
	if !both.Has(LogRequest) || !both.Has(LogResponse) {
		t.Errorf("Combined marker must carry both bits")
	}
	if LogRequest.Has(LogResponse) || None.Has(None) {
		t.Errorf("Unexpected Has result")
	}
	if both.String() != "LogRequest|LogResponse" || None.String() != "None" {
		t.Errorf("Unexpected marker strings %s %s", both, None)
	}
}

func TestConcurrentInterception(t *testing.T) {
	w, logger := newTestWeaver(SeverityInfo)
	h := w.Weave("TaskController", "GetTaskByID", LogRequest|LogResponse, func(ctx context.Context, args []any) (any, error) {
		return args[0], nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if v, _ := h(context.Background(), []any{i}); v != i {
				t.Errorf("Expected %d back, got %v", i, v)
			}
		}(i)
	}
	wg.Wait()

	if n := len(logger.all()); n != 100 {
		t.Errorf("Expected 100 lines, got %d", n)
	}
}

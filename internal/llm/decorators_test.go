package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/javalearn/internal/store"
)

func fastRetry(p Provider) *RetryProvider {
	rp := WithRetry(p, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}, nil).(*RetryProvider)
	rp.sleep = func(context.Context, time.Duration) error { return nil }
	return rp
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	resp, err := fastRetry(mock).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("content = %s", resp.Content)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("down")}
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Err: down})
	_, err := fastRetry(mock).Generate(context.Background(), Request{})
	if !errors.Is(err, down) {
		t.Fatalf("err = %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestRetry_NonRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"max tokens", &ErrMaxTokensExceeded{}},
		{"rejected", &ErrRequest{Status: 401, Err: errors.New("bad key")}},
		{"canceled", context.Canceled},
		{"circuit open", ErrCircuitOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockResponse{Content: json.RawMessage(`{}`)})
			if _, err := fastRetry(mock).Generate(context.Background(), Request{}); err == nil {
				t.Fatal("expected error")
			}
			if mock.CallCount() != 1 {
				t.Errorf("calls = %d, want 1", mock.CallCount())
			}
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := &ErrInvalidResponse{Err: errors.New("bad")}
	mock := NewMockProvider(MockResponse{Err: bad}, MockResponse{Err: bad}, MockResponse{Content: json.RawMessage(`{}`)})
	_, err := fastRetry(mock).Generate(context.Background(), Request{})
	if !errors.Is(err, bad) {
		t.Fatalf("err = %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_BackoffRespectsRetryAfter(t *testing.T) {
	rp := fastRetry(NewMockProvider())
	if got := rp.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("backoff = %v, want 7s", got)
	}
	if got := rp.backoff(10, errors.New("x")); got > 12*time.Millisecond {
		t.Errorf("backoff = %v, exceeds MaxWait plus jitter", got)
	}
}

func TestWithRetry_SingleAttemptIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithRetry(mock, RetryConfig{MaxAttempts: 1}, nil); p != Provider(mock) {
		t.Errorf("expected the inner provider back, got %T", p)
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("down")}
	mock := NewMockProvider()
	for i := 0; i < 5; i++ {
		mock.AddResponse(MockResponse{Err: down})
	}
	p := WithBreaker(mock, BreakerConfig{Failures: 2, Cooldown: time.Hour}, nil)

	for i := 0; i < 2; i++ {
		if _, err := p.Generate(context.Background(), Request{}); !errors.Is(err, down) {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2 (open circuit must not reach the provider)", mock.CallCount())
	}
}

func TestBreaker_IgnoresRejectedRequests(t *testing.T) {
	rejected := &ErrRequest{Status: 400, Err: errors.New("bad")}
	mock := NewMockProvider()
	for i := 0; i < 4; i++ {
		mock.AddResponse(MockResponse{Err: rejected})
	}
	p := WithBreaker(mock, BreakerConfig{Failures: 2, Cooldown: time.Hour}, nil)

	for i := 0; i < 4; i++ {
		_, err := p.Generate(context.Background(), Request{})
		if !errors.Is(err, rejected) {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
	if mock.CallCount() != 4 {
		t.Errorf("calls = %d, want 4", mock.CallCount())
	}
}

func TestBreaker_DisabledIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithBreaker(mock, BreakerConfig{}, nil); p != Provider(mock) {
		t.Errorf("expected the inner provider back, got %T", p)
	}
}

type recordingEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingEvents) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}
func (r *recordingEvents) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) { return nil, nil }
func (r *recordingEvents) LLMUsageByPurpose(context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}
func (r *recordingEvents) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func TestLogging_RecordsSuccessAndFailure(t *testing.T) {
	rec := &recordingEvents{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"answer":"a"}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, ProviderMock, rec, nil)
	ctx := WithPurpose(context.Background(), PurposeQuizGen)
	req := Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   answerSchema,
	}

	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("second call should fail")
	}

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	ok, failed := rec.events[0], rec.events[1]
	if !ok.Success || ok.Purpose != PurposeQuizGen || ok.InputTokens != 12 || ok.Provider != ProviderMock {
		t.Errorf("success event = %+v", ok)
	}
	if ok.ResponseBody != `{"answer":"a"}` {
		t.Errorf("response body = %q", ok.ResponseBody)
	}
	for _, want := range []string{"[system]", "be brief", "[user]", "hello", "[schema: answer-test]"} {
		if !strings.Contains(ok.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ok.RequestBody)
		}
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestLogging_StoreErrorDoesNotFailRequest(t *testing.T) {
	rec := &recordingEvents{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"hi"`)})
	if _, err := WithLogging(mock, ProviderMock, rec, nil).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPurposeFrom_Default(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != PurposeUnknown {
		t.Errorf("purpose = %q", got)
	}
}

func TestMockProvider_QueueAndValidation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"answer":"x"}`)},
		MockResponse{Content: json.RawMessage(`{"nope":1}`)},
	)
	if _, err := mock.Generate(context.Background(), Request{Schema: answerSchema}); err != nil {
		t.Fatalf("valid canned content: %v", err)
	}
	var inv *ErrInvalidResponse
	if _, err := mock.Generate(context.Background(), Request{Schema: answerSchema}); !errors.As(err, &inv) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if len(mock.Calls()) != 3 {
		t.Errorf("calls = %d", len(mock.Calls()))
	}
}

package story_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storyshare/internal/story"
)

func TestGo(t *testing.T) {
	p := story.Go(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})

	got, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Wait() = %d, want 42", got)
	}

	// A second Wait returns the same result.
	if again, _ := p.Wait(context.Background()); again != 42 {
		t.Errorf("second Wait() = %d, want 42", again)
	}
}

func TestGo_Error(t *testing.T) {
	boom := errors.New("boom")
	p := story.Go(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})
	if _, err := p.Wait(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Wait() error = %v, want %v", err, boom)
	}
}

func TestGo_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := story.Go(ctx, func(ctx context.Context) (struct{}, error) {
		<-ctx.Done()
		return struct{}{}, ctx.Err()
	})

	select {
	case <-p.Done():
		t.Fatal("Done() closed before cancel")
	case <-time.After(10 * time.Millisecond):
	}

	cancel()
	<-p.Done()
	if _, err := p.Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestPending_WaitTimeout(t *testing.T) {
	release := make(chan struct{})
	p := story.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	defer func() {
		close(release)
		<-p.Done()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if _, err := p.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
	}
}

func TestResolved(t *testing.T) {
	p := story.Resolved("done", nil)
	select {
	case <-p.Done():
	default:
		t.Fatal("Resolved() is not complete")
	}
	if got, err := p.Wait(context.Background()); got != "done" || err != nil {
		t.Errorf("Wait() = %q, %v, want \"done\", nil", got, err)
	}
}

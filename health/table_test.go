package health

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestNewTable_SeedsDefaultsHealthy(t *testing.T) {
	table := NewTable("mailer", "homepage", "sitemap")

	for _, name := range []string{"mailer", "homepage", "sitemap"} {
		if !table.Known(name) {
			t.Errorf("Known(%q) = false, want true", name)
		}
		if !table.Healthy(name) {
			t.Errorf("Healthy(%q) = false, want true", name)
		}
	}
	if got := len(table.Snapshot()); got != 3 {
		t.Errorf("len(Snapshot()) = %d, want 3", got)
	}
}

func TestTable_UnknownNameIsHealthy(t *testing.T) {
	table := NewTable()

	if !table.Healthy("never-set") {
		t.Error("Healthy(never-set) = false, want true")
	}
	if table.Known("never-set") {
		t.Error("lookup should not create an entry")
	}
	if table.Status("never-set") != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", table.Status("never-set"))
	}
}

func TestTable_Set(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		set     []bool
		want    bool
	}{
		{"unhealthy default", []string{"mailer"}, []bool{false}, false},
		{"implicit entry", nil, []bool{false}, false},
		{"flip back", []string{"mailer"}, []bool{false, true}, true},
		{"last write wins", nil, []bool{true, false, true, false}, false},
		{"repeated identical", nil, []bool{false, false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.initial...)
			for _, v := range tt.set {
				table.Set("mailer", v)
			}
			if got := table.Healthy("mailer"); got != tt.want {
				t.Errorf("Healthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable_CaseSensitiveNames(t *testing.T) {
	table := NewTable()
	table.Set("Mailer", false)

	if !table.Healthy("mailer") {
		t.Error("Healthy(mailer) should be unaffected by Mailer")
	}
	if table.Healthy("Mailer") {
		t.Error("Healthy(Mailer) = true, want false")
	}
}

func TestTable_SnapshotIsCopy(t *testing.T) {
	table := NewTable("mailer")

	snap := table.Snapshot()
	snap["mailer"] = false
	snap["other"] = false

	if !table.Healthy("mailer") {
		t.Error("mutating a snapshot changed the table")
	}
	if table.Known("other") {
		t.Error("mutating a snapshot added an entry")
	}
}

func TestTable_NamesSorted(t *testing.T) {
	table := NewTable("sitemap", "mailer")
	table.Set("homepage", false)

	names := table.Names()
	want := []string{"homepage", "mailer", "sitemap"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTable_Checkers(t *testing.T) {
	table := NewTable("mailer", "sitemap")
	table.Set("sitemap", false)

	checkers := table.Checkers()
	if len(checkers) != 2 {
		t.Fatalf("len(Checkers()) = %d, want 2", len(checkers))
	}

	ctx := context.Background()
	for _, c := range checkers {
		result := c.Check(ctx)
		switch c.Name() {
		case "mailer":
			if result.Status != StatusHealthy {
				t.Errorf("mailer status = %v, want healthy", result.Status)
			}
		case "sitemap":
			if result.Status != StatusUnhealthy {
				t.Errorf("sitemap status = %v, want unhealthy", result.Status)
			}
			if result.Error != ErrCheckFailed {
				t.Errorf("sitemap error = %v, want ErrCheckFailed", result.Error)
			}
		default:
			t.Errorf("unexpected checker %q", c.Name())
		}
	}
}

func TestTable_CheckerReadsLiveFlag(t *testing.T) {
	table := NewTable()
	checker := table.Checker("mailer")

	if checker.Check(context.Background()).Status != StatusHealthy {
		t.Fatal("expected healthy before toggle")
	}
	table.Set("mailer", false)
	if checker.Check(context.Background()).Status != StatusUnhealthy {
		t.Error("expected unhealthy after toggle")
	}
}

func TestTable_CheckerCancelledContext(t *testing.T) {
	table := NewTable("mailer")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := table.Checker("mailer").Check(ctx)
	if result.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy on cancelled context", result.Status)
	}
}

func TestTable_ConcurrentAccess(t *testing.T) {
	table := NewTable("mailer")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			table.Set(fmt.Sprintf("c%d", i%5), i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = table.Healthy("mailer")
			_ = table.Snapshot()
		}()
	}
	wg.Wait()

	if len(table.Names()) != 6 {
		t.Errorf("len(Names()) = %d, want 6", len(table.Names()))
	}
}

package launch

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screentime/classifier"
	"screentime/config"
	"screentime/entity"
	"screentime/manager"
	"screentime/report"
)

var testNow = time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)

func staticSource(records ...entity.ProcessRecord) Source {
	return SourceFunc(func(context.Context) ([]entity.ProcessRecord, error) {
		return records, nil
	})
}

// recordingClassifier answers with a fixed label and remembers what it was asked.
type recordingClassifier struct {
	label string
	err   error
	calls []string
}

func (c *recordingClassifier) Classify(_ context.Context, text string, labels []string) ([]classifier.Prediction, error) {
	c.calls = append(c.calls, text)
	if c.err != nil {
		return nil, c.err
	}
	return []classifier.Prediction{{Label: c.label, Score: 0.9}, {Label: "Outros", Score: 0.1}}, nil
}

func newTestPipeline(src Source, c classifier.Classifier) *Pipeline {
	cfg := config.DefaultConfig()
	table, _ := cfg.CategoryTable()
	return &Pipeline{
		Source:     src,
		Ignore:     manager.NewIgnoreList(cfg.Filter.Ignore),
		Categories: table,
		Classifier: c,
		WindowDays: 7,
		Now:        func() time.Time { return testNow },
	}
}

func TestPipeline_Scenario(t *testing.T) {
	c := &recordingClassifier{label: "Jogos"}
	p := newTestPipeline(staticSource(
		entity.ProcessRecord{Name: "chrome.exe", StartTime: testNow.Add(-2 * time.Hour)},
		entity.ProcessRecord{Name: "svchost.exe", StartTime: testNow.Add(-1 * time.Hour)},
		entity.ProcessRecord{Name: "steam.exe", StartTime: testNow.AddDate(0, 0, -30)},
	), c)

	r, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, r.Entries)
	require.Len(t, r.CategoryTotals, 1)
	assert.Equal(t, entity.Browser, r.CategoryTotals[0].Category)
	assert.InDelta(t, 2.0, r.CategoryTotals[0].Hours, 1e-9)
	assert.InDelta(t, 2.0, r.TotalScreenTimeHours, 1e-9)
	assert.Equal(t, 0.2, r.BooksRead(10))
	assert.Empty(t, c.calls)

	require.Len(t, r.AppBreakdown, 1)
	assert.Equal(t, "chrome.exe", r.AppBreakdown[0].App)
}

func TestPipeline_IgnoredAndOutOfWindowAreNeverClassified(t *testing.T) {
	c := &recordingClassifier{label: "Jogos"}
	p := newTestPipeline(staticSource(
		entity.ProcessRecord{Name: "svchost.exe", StartTime: testNow.Add(-1 * time.Hour)},
		entity.ProcessRecord{Name: "conhost.exe", StartTime: testNow.Add(-1 * time.Hour)},
		entity.ProcessRecord{Name: "old.exe", StartTime: testNow.AddDate(0, 0, -8)},
		entity.ProcessRecord{Name: "future.exe", StartTime: testNow.Add(time.Hour)},
		entity.ProcessRecord{Name: "game.exe", StartTime: testNow.Add(-3 * time.Hour)},
	), c)

	r, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"game.exe"}, c.calls)
	for _, at := range r.AppBreakdown {
		assert.NotEqual(t, "svchost.exe", at.App)
		assert.NotEqual(t, "old.exe", at.App)
	}
	assert.Equal(t, 1, r.Entries)
}

func TestPipeline_ClassifiesEachAppOnce(t *testing.T) {
	c := &recordingClassifier{label: "Jogos"}
	p := newTestPipeline(staticSource(
		entity.ProcessRecord{Name: "game.exe", StartTime: testNow.Add(-3 * time.Hour)},
		entity.ProcessRecord{Name: "game.exe", StartTime: testNow.Add(-2 * time.Hour)},
		entity.ProcessRecord{Name: "game.exe", StartTime: testNow.Add(-1 * time.Hour)},
	), c)

	r, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, c.calls, 1)
	assert.Equal(t, entity.Games, r.CategoryTotals[0].Category)
	assert.InDelta(t, 6.0, r.CategoryTotals[0].Hours, 1e-9)
	assert.InDelta(t, 3.0, r.TotalScreenTimeHours, 1e-9)
}

func TestPipeline_RunsAreIndependent(t *testing.T) {
	c := &recordingClassifier{label: "Jogos"}
	p := newTestPipeline(staticSource(
		entity.ProcessRecord{Name: "game.exe", StartTime: testNow.Add(-1 * time.Hour)},
	), c)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	r, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, c.calls, 2, "the resolver cache lives for one run")
	assert.Equal(t, 1, r.Entries)
}

func TestPipeline_ClassifierErrorFallsBackToOther(t *testing.T) {
	c := &recordingClassifier{err: errors.New("model not loaded")}
	p := newTestPipeline(staticSource(
		entity.ProcessRecord{Name: "mystery.exe", StartTime: testNow.Add(-1 * time.Hour)},
		entity.ProcessRecord{Name: "chrome.exe", StartTime: testNow.Add(-30 * time.Minute)},
	), c)

	r, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, r.Hours(entity.Other), 1e-9)
	assert.InDelta(t, 0.5, r.Hours(entity.Browser), 1e-9)
	assert.Contains(t, r.AppBreakdown, entity.AppTotal{Category: entity.Other, App: "mystery.exe", Hours: 1.0})
}

func TestPipeline_NoData(t *testing.T) {
	p := newTestPipeline(staticSource(), nil)
	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, entity.ErrNoData)

	p = newTestPipeline(staticSource(
		entity.ProcessRecord{Name: "svchost.exe", StartTime: testNow.Add(-1 * time.Hour)},
	), nil)
	_, err = p.Run(context.Background())
	assert.ErrorIs(t, err, entity.ErrNoData)
}

func TestPipeline_SourceUnavailable(t *testing.T) {
	p := newTestPipeline(SourceFunc(func(context.Context) ([]entity.ProcessRecord, error) {
		return nil, errors.New("access denied")
	}), nil)

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, entity.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "access denied")
}

func TestExecute(t *testing.T) {
	t.Run("report", func(t *testing.T) {
		var buf bytes.Buffer
		p := newTestPipeline(staticSource(
			entity.ProcessRecord{Name: "chrome.exe", StartTime: testNow.Add(-2 * time.Hour)},
		), nil)

		code := Execute(context.Background(), p, &buf, report.DefaultOptions())
		assert.Equal(t, 0, code)
		assert.Contains(t, buf.String(), "Tempo Total de Tela (Estimativa): 2.00 horas")
		assert.Contains(t, buf.String(), "Você poderia ter lido 0.20 livros de 10 horas")
	})

	t.Run("no data", func(t *testing.T) {
		var buf bytes.Buffer
		code := Execute(context.Background(), newTestPipeline(staticSource(), nil), &buf, report.DefaultOptions())
		assert.Equal(t, 0, code)
		assert.Equal(t, report.NoDataMessage+"\n", buf.String())
	})

	t.Run("source unavailable", func(t *testing.T) {
		var buf bytes.Buffer
		p := newTestPipeline(SourceFunc(func(context.Context) ([]entity.ProcessRecord, error) {
			return nil, entity.ErrSourceUnavailable
		}), nil)
		code := Execute(context.Background(), p, &buf, report.DefaultOptions())
		assert.Equal(t, 1, code)
		assert.Contains(t, buf.String(), "permissão de administrador")
	})
}

func TestNewPipeline(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Classifier.Provider = config.ProviderNone

	p, err := NewPipeline(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &ProcessSource{}, p.Source)
	assert.IsType(t, classifier.Disabled{}, p.Classifier)
	assert.Equal(t, 7, p.WindowDays)
	assert.True(t, p.Ignore.IsIgnored("svchost.exe"))
	assert.Equal(t, entity.Browser, p.Categories["chrome.exe"])

	cfg.Classifier.Provider = config.ProviderHuggingFace
	p, err = NewPipeline(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &classifier.HuggingFace{}, p.Classifier)
}

func TestPipeline_CancelledDuringClassification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	c := classifier.Func(func(ctx context.Context, text string, labels []string) ([]classifier.Prediction, error) {
		calls++
		if calls == 1 {
			cancel()
			return []classifier.Prediction{{Label: "Jogos", Score: 0.9}}, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []classifier.Prediction{{Label: "Jogos", Score: 0.9}}, nil
	})
	p := newTestPipeline(staticSource(
		entity.ProcessRecord{Name: "a.exe", StartTime: testNow.Add(-1 * time.Hour)},
		entity.ProcessRecord{Name: "b.exe", StartTime: testNow.Add(-1 * time.Hour)},
		entity.ProcessRecord{Name: "c.exe", StartTime: testNow.Add(-1 * time.Hour)},
	), c)

	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, entity.ErrNoData)

	var buf bytes.Buffer
	code := Execute(ctx, p, &buf, report.DefaultOptions())
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Ocorreu um erro")
	assert.NotContains(t, buf.String(), "Relatório de Uso de Tela")
}

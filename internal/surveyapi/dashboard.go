package surveyapi

import (
	"context"
	"sync"

	"github.com/miradorhq/mirador/pkg/api"
)

// Result wraps a single optional fetch so one failing call can be carried
// alongside successful siblings instead of aborting the whole batch.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the fetch succeeded.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Dashboard is the aggregate the dashboard surface renders. KPIs, program
// responses and the program list are required; satisfaction analysis is
// optional and allowed to fail on its own.
type Dashboard struct {
	KPIs         *api.KPIReport
	Responses    []api.ProgramResponses
	Programs     []string
	Satisfaction Result[*api.SatisfactionAnalysis]
}

// FetchDashboard fetches the dashboard sections concurrently and joins
// them. If any required fetch fails the whole batch fails with that error;
// the satisfaction section is wrapped individually and its failure is
// reported inside the returned Dashboard instead.
func (s *StatisticsAPI) FetchDashboard(ctx context.Context, dataset string, filters api.StatsFilters) (*Dashboard, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		d    Dashboard
	)

	required := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	required(func() error {
		kpis, err := s.KPIs(ctx, filters)
		if err != nil {
			return err
		}
		d.KPIs = kpis
		return nil
	})
	required(func() error {
		responses, err := s.ResponsesPerProgram(ctx, dataset, filters)
		if err != nil {
			return err
		}
		d.Responses = responses
		return nil
	})
	required(func() error {
		programs, err := s.Programs(ctx)
		if err != nil {
			return err
		}
		d.Programs = programs
		return nil
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		value, err := s.SatisfactionAnalysis(ctx, dataset, filters)
		d.Satisfaction = Result[*api.SatisfactionAnalysis]{Value: value, Err: err}
	}()

	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return &d, nil
}

package allocator

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
)

// FindBestMatches scores every employee against every task and ranks each
// task's candidates by score, highest first. Ties keep the order employees
// were given in. The result follows the input task order.
//
// Tasks are scored concurrently; scorers are pure so the result is the same as
// a sequential pass. The only error returned is context cancellation.
func FindBestMatches(ctx context.Context, scorer scoring.Scorer, employees []model.Employee, tasks []model.Task, opts ...Option) ([]TaskMatches, error) {
	o := buildOptions(opts)

	snapshot := make([]model.Employee, len(employees))
	for i, e := range employees {
		snapshot[i] = e.Clone()
	}

	results := make([]TaskMatches, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, task := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = rankCandidates(scorer, snapshot, task)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func rankCandidates(scorer scoring.Scorer, employees []model.Employee, task model.Task) TaskMatches {
	candidates := make([]model.MatchScore, len(employees))
	for i, employee := range employees {
		candidates[i] = model.MatchScore{
			Employee: employee,
			Task:     task,
			Score:    scorer.Score(employee, task),
		}
	}

	slices.SortStableFunc(candidates, func(a, b model.MatchScore) int {
		return b.Score - a.Score
	})

	return TaskMatches{Task: task, Candidates: candidates}
}

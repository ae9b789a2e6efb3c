package controller

import (
	"context"
	"sync"

	"github.com/ecodeclub/jobgenie/internal/client/internal/engine"
	"github.com/ecodeclub/jobgenie/internal/resource"
	"golang.org/x/sync/errgroup"
)

// Set 按注册表给每个资源种类建一个 Controller
type Set struct {
	controllers map[resource.Kind]*Controller
}

func NewSet(eng *engine.Engine) *Set {
	schemas := resource.Schemas()
	controllers := make(map[resource.Kind]*Controller, len(schemas))
	for _, sch := range schemas {
		controllers[sch.Kind] = New(sch, eng)
	}
	return &Set{controllers: controllers}
}

func (s *Set) Controller(kind resource.Kind) *Controller {
	return s.controllers[kind]
}

// Counts 仪表盘用：并发拉全部种类的列表条数。
// 单个种类失败会退回样例数据，所以这里不会整体失败
func (s *Set) Counts(ctx context.Context) (map[resource.Kind]int, error) {
	var mu sync.Mutex
	counts := make(map[resource.Kind]int, len(s.controllers))
	eg, ctx := errgroup.WithContext(ctx)
	for kind, c := range s.controllers {
		eg.Go(func() error {
			recs, err := c.List(ctx, resource.Filter{})
			if err != nil {
				return err
			}
			mu.Lock()
			counts[kind] = len(recs)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

package loader

import (
	"context"
	"sync"

	"github.com/kpfaulkner/radiance-go/core"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// SceneCache holds decoded scenes by id. Concurrent requests for a scene that is
// not loaded yet share a single load. Failed loads are not cached.
type SceneCache struct {
	loader  *Loader
	catalog *Catalog

	lock   sync.RWMutex
	scenes map[string]*core.HDRImage
	group  singleflight.Group
}

func NewSceneCache(loader *Loader, catalog *Catalog) *SceneCache {
	return &SceneCache{
		loader:  loader,
		catalog: catalog,
		scenes:  make(map[string]*core.HDRImage),
	}
}

func (sc *SceneCache) IsLoaded(id string) bool {
	sc.lock.RLock()
	defer sc.lock.RUnlock()
	_, ok := sc.scenes[id]
	return ok
}

// Get returns the scene, loading it first if needed. The load runs detached from
// ctx so that one caller giving up does not fail the others sharing it, a
// cancelled caller returns ctx.Err() while the load carries on into the cache.
func (sc *SceneCache) Get(ctx context.Context, id string) (*core.HDRImage, error) {
	sc.lock.RLock()
	img, ok := sc.scenes[id]
	sc.lock.RUnlock()
	if ok {
		return img, nil
	}

	location, err := sc.catalog.Location(id)
	if err != nil {
		return nil, err
	}

	loadCtx := context.WithoutCancel(ctx)
	results := sc.group.DoChan(id, func() (interface{}, error) {
		// another caller may have finished loading since the check above
		sc.lock.RLock()
		img, ok := sc.scenes[id]
		sc.lock.RUnlock()
		if ok {
			return img, nil
		}

		img, err := sc.loader.LoadSync(loadCtx, location)
		if err != nil {
			return nil, err
		}
		sc.lock.Lock()
		sc.scenes[id] = img
		sc.lock.Unlock()
		return img, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			log.Errorf("load scene %s : %v", id, res.Err)
			return nil, res.Err
		}
		if res.Shared {
			log.Debugf("scene %s load shared between callers", id)
		}
		return res.Val.(*core.HDRImage), nil
	}
}

// Load is Get on a background goroutine. The returned channel receives exactly
// one Result and is then closed.
func (sc *SceneCache) Load(ctx context.Context, id string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		location, _ := sc.catalog.Location(id)
		img, err := sc.Get(ctx, id)
		ch <- Result{Location: location, Image: img, Err: err}
	}()
	return ch
}

// Preload loads the given scenes concurrently, stopping at the first failure.
func (sc *SceneCache) Preload(ctx context.Context, ids ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sc.loader.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			_, err := sc.Get(ctx, id)
			return err
		})
	}
	return g.Wait()
}

func (sc *SceneCache) Evict(id string) {
	sc.lock.Lock()
	defer sc.lock.Unlock()
	delete(sc.scenes, id)
}

func (sc *SceneCache) Len() int {
	sc.lock.RLock()
	defer sc.lock.RUnlock()
	return len(sc.scenes)
}

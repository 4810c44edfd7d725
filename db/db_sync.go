package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/liangmanlin/gostruct/gate/pb"
)

var ErrGroupClosed = errors.New("db group closed")

type insertRow struct {
	def *TabDef
	row row
}

// SyncInsert queues obj for the table of c. Rows of one table always go to
// the same worker so they keep their order.
func (g *Group) SyncInsert(c *pb.Codec, obj pb.Object) error {
	def := g.GetDef(c.ID())
	if def == nil || def.codec != c {
		return fmt.Errorf("db: table for %s not ensured", c)
	}
	r, err := toRow(def, obj, time.Now())
	if err != nil {
		return err
	}
	g.mux.RLock()
	defer g.mux.RUnlock()
	if g.closed {
		return ErrGroupClosed
	}
	g.workers[int(c.ID())%len(g.workers)].ch <- &insertRow{def: def, row: r}
	return nil
}

func startSync(g *Group, num int, syncTime time.Duration) {
	if num <= 0 {
		num = 1
	}
	g.workers = make([]*syncWorker, num)
	for i := 0; i < num; i++ {
		w := newSyncWorker(g, syncTime)
		g.workers[i] = w
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			w.loop()
		}()
	}
}

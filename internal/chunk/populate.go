package chunk

import (
	"log/slog"
	"time"

	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/village"
	"github.com/talgya/hamlet/internal/world"
)

// Populate places the configured forests, then the configured villages,
// and returns a report of the chunk. Each village is generated from its
// own sub-stream, so a village's contents depend only on the chunk seed
// and its placement index.
func (c *Chunk) Populate() Report {
	start := time.Now()

	for i := 0; i < c.Config.Forests; i++ {
		c.AddForest()
	}
	for i := 0; i < c.Config.Villages; i++ {
		c.AddVillage()
	}

	rep := c.Report()
	rep.Elapsed = time.Since(start)
	slog.Info("chunk populated",
		"seed", rep.Seed,
		"regions", rep.Regions,
		"villages", rep.Villages,
		"forests", rep.Forests,
		"rejected", rep.RegionsRejected,
		"elapsed", rep.Elapsed,
	)
	return rep
}

// AddForest places one forest region and grows its trees.
func (c *Chunk) AddForest() (*Forest, bool) {
	region, ok := c.PlaceRegion(c.rng, world.LabelForest, c.Config.Forest.SpawnRadius, c.Min, c.Max)
	if !ok {
		return nil, false
	}
	f := growForest(c.rng, region, c.Config.Forest, c.Ground, c.Config.Village.GroundOffset)
	c.forests = append(c.forests, f)
	return f, true
}

// AddVillage places one village region and generates the village in it.
func (c *Chunk) AddVillage() (*village.Village, bool) {
	region, ok := c.PlaceRegion(c.rng, world.LabelVillage, c.Config.VillageSpawnRadius, c.Min, c.Max)
	if !ok {
		return nil, false
	}
	stream := c.rng.Fork(saltVillage + uint64(len(c.villages)))
	v := c.generator.Populate(stream, region)
	c.villages = append(c.villages, v)
	return v, true
}

// CreateVillageAt generates a village centered on p, for interactive
// placement. p must lie outside every region. The draws are made on the
// chunk's debug stream and rolled back afterwards, so every call starts
// from the same random state and villages created this way share their
// layout relative to their centers.
func (c *Chunk) CreateVillageAt(p geom.Vec3) (*village.Village, bool) {
	if r, taken := c.FindRegionContaining(p); taken {
		slog.Debug("village site taken", "site", p, "region", r.Name)
		return nil, false
	}

	var v *village.Village
	entropy.Isolate(c.debug, func() {
		radius := c.Config.VillageSpawnRadius
		region, ok := c.claim(c.debug, world.LabelVillage, radius, p, radius.Sample(c.debug))
		if !ok {
			return
		}
		v = c.generator.Populate(c.debug, region)
	})
	if v == nil {
		return nil, false
	}
	c.villages = append(c.villages, v)
	return v, true
}

// Report summarizes a chunk.
type Report struct {
	Seed             uint64          `json:"seed"`
	Size             float64         `json:"size"`
	Regions          int             `json:"regions"`
	RegionsRequested int             `json:"regions_requested"`
	RegionsRejected  int             `json:"regions_rejected"`
	Forests          int             `json:"forests"`
	Trees            int             `json:"trees"`
	Villages         int             `json:"villages"`
	Huts             int             `json:"huts"`
	Villagers        int             `json:"villagers"`
	Unhoused         int             `json:"unhoused"`
	Elapsed          time.Duration   `json:"elapsed"`
	VillageReports   []VillageReport `json:"village_reports"`
}

// VillageReport summarizes one village.
type VillageReport struct {
	Name      string        `json:"name"`
	Center    geom.Vec3     `json:"center"`
	Radius    float64       `json:"radius"`
	HeadCount int           `json:"head_count"`
	Huts      int           `json:"huts"`
	Unhoused  int           `json:"unhoused"`
	Stats     village.Stats `json:"stats"`
}

// Report summarizes the chunk's current contents.
func (c *Chunk) Report() Report {
	rep := Report{
		Seed:             c.Seed(),
		Size:             c.Config.Size,
		Regions:          len(c.regions),
		RegionsRequested: c.requested,
		RegionsRejected:  c.rejected,
		Forests:          len(c.forests),
		Villages:         len(c.villages),
	}
	for _, f := range c.forests {
		rep.Trees += len(f.Trees)
	}
	for _, v := range c.villages {
		vr := VillageReport{
			Name:      v.Name(),
			Center:    v.Center(),
			Radius:    v.Region.Radius,
			HeadCount: len(v.Villagers),
			Huts:      len(v.Huts),
			Unhoused:  v.UnhousedCount(),
			Stats:     v.Stats,
		}
		rep.Huts += vr.Huts
		rep.Villagers += vr.HeadCount
		rep.Unhoused += vr.Unhoused
		rep.VillageReports = append(rep.VillageReports, vr)
	}
	return rep
}

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/data/loader"
	"github.com/penwyp/go-survey-explorer/internal/data/scanner"
	"github.com/penwyp/go-survey-explorer/internal/data/watcher"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// reloadDelay coalesces bursts of file events into one reload.
const reloadDelay = 250 * time.Millisecond

// Orchestrator loads datasets into dashboards and reloads them on change
type Orchestrator struct {
	config  *Config
	manager *Manager
	sources scanner.Sources
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *Config, manager *Manager) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if manager == nil {
		manager = NewManager()
	}

	sources := config.Sources
	discovered, err := scanner.Discover(config.DataDir)
	if err != nil {
		util.LogWarnf("Dataset discovery in %s failed: %v", config.DataDir, err)
	} else {
		sources = sources.Merge(discovered)
	}

	return &Orchestrator{config: config, manager: manager, sources: sources}, nil
}

// Manager returns the dashboards being served
func (o *Orchestrator) Manager() *Manager { return o.manager }

// Sources returns the resolved dataset locations
func (o *Orchestrator) Sources() scanner.Sources { return o.sources }

// Load loads every dashboard whose data is configured. Failures are recorded
// on the manager so surfaces can show them; the joined error is returned.
func (o *Orchestrator) Load(ctx context.Context) error {
	var errs []error
	if err := o.LoadWage(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := o.LoadTimeUse(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadWage (re)builds the wage dashboard
func (o *Orchestrator) LoadWage(ctx context.Context) error {
	start := time.Now()
	err := o.loadWage(ctx)
	if err != nil {
		util.LogErrorf("Wage dashboard load failed: %v", err)
		o.manager.SetError(KindWage, err)
		return err
	}
	util.LogInfof("Wage dashboard loaded in %v", time.Since(start))
	return nil
}

func (o *Orchestrator) loadWage(ctx context.Context) error {
	if o.sources.WageData == "" {
		return fmt.Errorf("no wage dataset found in %s", o.config.DataDir)
	}
	records, err := loader.LoadWageRecords(ctx, o.sources.WageData)
	if err != nil {
		return err
	}
	dict, err := o.loadDictionary(ctx)
	if err != nil {
		return err
	}
	d, err := NewWage(o.config, records, dict)
	if err != nil {
		return err
	}
	o.manager.Set(d)
	return nil
}

func (o *Orchestrator) loadDictionary(ctx context.Context) (*model.Dictionary, error) {
	if o.sources.WageDictionary == "" {
		util.LogWarnf("No wage dictionary configured; showing raw codes")
		return nil, nil
	}
	return loader.LoadDictionary(ctx, o.sources.WageDictionary)
}

// LoadTimeUse (re)builds the time-use dashboard
func (o *Orchestrator) LoadTimeUse(ctx context.Context) error {
	start := time.Now()
	err := o.loadTimeUse(ctx)
	if err != nil {
		util.LogErrorf("Time-use dashboard load failed: %v", err)
		o.manager.SetError(KindTimeUse, err)
		return err
	}
	util.LogInfof("Time-use dashboard loaded in %v", time.Since(start))
	return nil
}

func (o *Orchestrator) loadTimeUse(ctx context.Context) error {
	if o.sources.TimeUseData == "" {
		return fmt.Errorf("no time-use dataset found in %s", o.config.DataDir)
	}
	records, err := loader.LoadTimeUseRecords(ctx, o.sources.TimeUseData)
	if err != nil {
		return err
	}
	var catalog []model.CategoryActivities
	if o.sources.Activities != "" {
		catalog, err = loader.LoadCategoryActivities(ctx, o.sources.Activities)
		if err != nil {
			return err
		}
	}
	d, err := NewTimeUse(o.config, records, catalog)
	if err != nil {
		return err
	}
	o.manager.Set(d)
	return nil
}

// Watch reloads a dashboard whenever one of its local files changes, until
// ctx is done.
func (o *Orchestrator) Watch(ctx context.Context) error {
	paths := o.sources.Paths()
	if len(paths) == 0 {
		util.LogInfo("No local datasets to watch")
		<-ctx.Done()
		return nil
	}
	fw, err := watcher.New(paths)
	if err != nil {
		return fmt.Errorf("failed to start dataset watcher: %w", err)
	}
	defer fw.Close()

	pending := make(map[Kind]struct{})
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events():
			if !ok {
				return nil
			}
			kind, ok := o.kindFor(event.Path)
			if !ok {
				continue
			}
			util.LogDebug(fmt.Sprintf("Dataset changed: %s (%s)", event.Path, event.Operation))
			pending[kind] = struct{}{}
			timer.Reset(reloadDelay)

		case <-timer.C:
			for kind := range pending {
				o.reload(ctx, kind)
			}
			pending = make(map[Kind]struct{})
		}
	}
}

func (o *Orchestrator) reload(ctx context.Context, kind Kind) {
	switch kind {
	case KindWage:
		_ = o.LoadWage(ctx)
	case KindTimeUse:
		_ = o.LoadTimeUse(ctx)
	}
}

func (o *Orchestrator) kindFor(path string) (Kind, bool) {
	same := func(a, b string) bool {
		if a == "" {
			return false
		}
		aa, err1 := filepath.Abs(a)
		bb, err2 := filepath.Abs(b)
		return err1 == nil && err2 == nil && aa == bb
	}
	switch {
	case same(o.sources.WageData, path), same(o.sources.WageDictionary, path):
		return KindWage, true
	case same(o.sources.TimeUseData, path), same(o.sources.Activities, path):
		return KindTimeUse, true
	}
	return "", false
}

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alphabill-org/rbtree/internal/elements"
	"github.com/alphabill-org/rbtree/tree/rbtree"
)

const (
	flagNameFormat      = "format"
	flagNameDelete      = "delete"
	flagNameMaxElements = "max-elements"

	// how many input files are decoded at the same time
	maxParallelLoads = 4
)

// inputConfig holds the flags shared by all element commands.
type inputConfig struct {
	Base        *baseConfiguration
	Format      string
	Delete      []string
	MaxElements int
}

func (c *inputConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.Format, flagNameFormat, "", "input format, one of: text, yaml, cbor (default is detected from the file extension)")
	cmd.Flags().StringArrayVar(&c.Delete, flagNameDelete, nil, "element to delete after loading, may be repeated. In env and config values elements are separated by \";\"")
	cmd.Flags().IntVar(&c.MaxElements, flagNameMaxElements, 0, "maximum number of elements the tree may hold, 0 means unlimited")
}

func (c *inputConfig) inputFormat() (elements.Format, error) {
	if c.Format == "" {
		return "", nil
	}
	return elements.ParseFormat(c.Format)
}

// elementType describes how a command loads, orders and prints its elements.
type elementType[T any] struct {
	name    string
	load    func(path string, format elements.Format) ([]T, error)
	parse   func(s string) (T, error)
	compare rbtree.CompareFunc[T]
	free    rbtree.FreeFunc[T]
	format  func(T) string
}

/*
buildTree loads all the files into a new tree and then deletes the elements
given with the --delete flag. Duplicates and missing elements are logged and
skipped. Caller must Destroy the tree.
*/
func (et *elementType[T]) buildTree(ctx context.Context, cfg *inputConfig, files []string) (*rbtree.Tree[T], error) {
	format, err := cfg.inputFormat()
	if err != nil {
		return nil, err
	}
	toDelete := make([]T, 0, len(cfg.Delete))
	for _, s := range cfg.Delete {
		item, err := et.parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s to delete: %w", et.name, err)
		}
		toDelete = append(toDelete, item)
	}

	batches, err := loadAll(ctx, files, format, et.load)
	if err != nil {
		return nil, err
	}

	var opts []rbtree.Option[T]
	if cfg.MaxElements > 0 {
		opts = append(opts, rbtree.WithFreeList(rbtree.NewBoundedFreeList[T](rbtree.DefaultFreeListSize, cfg.MaxElements)))
	}
	tr, err := rbtree.New(et.compare, et.free, opts...)
	if err != nil {
		return nil, err
	}
	if err := et.fill(tr, batches); err != nil {
		tr.Destroy()
		return nil, err
	}
	et.deleteAll(tr, toDelete)
	log.Debug("%s tree holds %d elements", et.name, tr.Len())
	return tr, nil
}

// loadAll decodes the files concurrently, batches are returned in the order of the files.
func loadAll[T any](ctx context.Context, files []string, format elements.Format, load func(string, elements.Format) ([]T, error)) ([][]T, error) {
	batches := make([][]T, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items, err := load(file, format)
			if err != nil {
				return err
			}
			batches[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

func (et *elementType[T]) fill(tr *rbtree.Tree[T], batches [][]T) error {
	for _, batch := range batches {
		for _, item := range batch {
			err := tr.Insert(item)
			switch {
			case err == nil:
			case errors.Is(err, rbtree.ErrDuplicate):
				log.Warning("skipping duplicate %s %s", et.name, et.format(item))
			default:
				return fmt.Errorf("inserting %s %s: %w", et.name, et.format(item), err)
			}
		}
	}
	return nil
}

func (et *elementType[T]) deleteAll(tr *rbtree.Tree[T], keys []T) {
	for _, key := range keys {
		if err := tr.Delete(key); err != nil {
			log.Warning("cannot delete %s %s: %v", et.name, et.format(key), err)
		}
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyShmatok/postagg/shared/domain"
	internal_errors "github.com/SergeyShmatok/postagg/shared/errors"
	"github.com/SergeyShmatok/postagg/shared/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/SergeyShmatok/postagg/internal/service"

// Loader defines the typed remote loads the pipeline needs.
type Loader interface {
	GetPosts(ctx context.Context) ([]domain.Post, error)
	GetComments(ctx context.Context, postId domain.PostId) ([]domain.Comment, error)
	GetAuthor(ctx context.Context, authorId domain.AuthorId) (domain.Author, error)
}

// RunObserver is told how every run ended.
type RunObserver interface {
	ObserveRun(state string, aggregates int, duration time.Duration)
}

type Aggregator struct {
	loader   Loader
	observer RunObserver
	tracer   trace.Tracer
}

func NewAggregator(loader Loader, observer RunObserver) *Aggregator {
	return &Aggregator{
		loader:   loader,
		observer: observer,
		tracer:   otel.Tracer(tracerName),
	}
}

type run struct {
	id    string
	state RunState
	log   *slog.Logger
}

// transition moves the run to the next state. A finished run stays finished.
func (r *run) transition(to RunState) {
	if r.state.Terminal() {
		r.log.Warn("ignoring transition of finished run", "state", r.state.String(), "to", to.String())
		return
	}
	r.log.Debug("pipeline state", "from", r.state.String(), "to", to.String())
	r.state = to
}

// Run loads every post and aggregates each one with its author, comments and
// comment authors. The result keeps the order of the post list. Any failure
// fails the whole run and no aggregate is returned.
func (a *Aggregator) Run(ctx context.Context) ([]domain.PostWithComments, error) {
	r := &run{id: uuid.NewString(), state: NotStarted}
	r.log = logger.Log.With("run_id", r.id)

	ctx, span := a.tracer.Start(ctx, "aggregator.Run", trace.WithAttributes(attribute.String("run_id", r.id)))
	defer span.End()

	start := time.Now()
	result, err := a.run(ctx, r)
	if err != nil {
		r.transition(Failed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.log.Error("pipeline failed", "kind", internal_errors.Kind(err), "error", err, "duration", time.Since(start))
		result = nil
	} else {
		r.transition(Completed)
		r.log.Info("pipeline completed", "aggregates", len(result), "duration", time.Since(start))
	}

	if a.observer != nil {
		a.observer.ObserveRun(r.state.String(), len(result), time.Since(start))
	}
	return result, err
}

func (a *Aggregator) run(ctx context.Context, r *run) ([]domain.PostWithComments, error) {
	r.transition(LoadingPosts)
	posts, err := a.loader.GetPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	result := make([]domain.PostWithComments, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	r.transition(FanningOutWorkers)
	var g errgroup.Group
	for i, post := range posts {
		g.Go(func() error {
			aggregate, err := a.aggregate(ctx, post)
			if err != nil {
				return fmt.Errorf("post %d: %w", post.Id, err)
			}
			r.log.Debug("post aggregated", "aggregate", aggregate.String())
			result[i] = aggregate
			return nil
		})
	}

	r.transition(AwaitingAllWorkers)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// aggregate resolves the dependencies of one post. Comment authors are loaded
// only once the comment list is known.
func (a *Aggregator) aggregate(ctx context.Context, post domain.Post) (domain.PostWithComments, error) {
	ctx, span := a.tracer.Start(ctx, "aggregator.aggregate", trace.WithAttributes(attribute.Int64("post_id", post.Id)))
	defer span.End()

	var (
		author         domain.Author
		comments       []domain.Comment
		commentAuthors []domain.Author
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		author, err = a.loader.GetAuthor(ctx, post.AuthorId)
		if err != nil {
			return fmt.Errorf("author %d: %w", post.AuthorId, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		comments, err = a.loader.GetComments(ctx, post.Id)
		if err != nil {
			return fmt.Errorf("comments: %w", err)
		}
		commentAuthors, err = a.commentAuthors(ctx, comments)
		return err
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.PostWithComments{}, err
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	return domain.PostWithComments{
		Post:           post,
		Comments:       comments,
		Author:         author,
		CommentAuthors: commentAuthors,
	}, nil
}

// commentAuthors loads the author of every comment concurrently.
// authors[i] belongs to comments[i] whatever the completion order.
func (a *Aggregator) commentAuthors(ctx context.Context, comments []domain.Comment) ([]domain.Author, error) {
	authors := make([]domain.Author, len(comments))

	var g errgroup.Group
	for i, comment := range comments {
		g.Go(func() error {
			author, err := a.loader.GetAuthor(ctx, comment.AuthorId)
			if err != nil {
				return fmt.Errorf("comment %d author %d: %w", comment.Id, comment.AuthorId, err)
			}
			authors[i] = author
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return authors, nil
}

package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/tmdb"
)

// Ownership reports whether a catalog movie is already in the user's library
type Ownership interface {
	Owned(tmdbID int64) bool
}

// movieEnv is the environment expressions are evaluated against
type movieEnv struct {
	ID            int64     `expr:"id"`
	Title         string    `expr:"title"`
	OriginalTitle string    `expr:"original_title"`
	Year          int       `expr:"year"`
	Released      time.Time `expr:"released"`
	Rating        float64   `expr:"rating"`
	Votes         int       `expr:"votes"`
	Popularity    float64   `expr:"popularity"`
	Language      string    `expr:"language"`
	Adult         bool      `expr:"adult"`
	Genres        []int     `expr:"genres"`
	HasPoster     bool      `expr:"has_poster"`
	Owned         bool      `expr:"owned"`
}

func newEnv(movie tmdb.Movie, owned Ownership) movieEnv {
	env := movieEnv{
		ID:            movie.ID,
		Title:         movie.Title,
		OriginalTitle: movie.OriginalTitle,
		Year:          movie.Year(),
		Rating:        movie.VoteAverage,
		Votes:         movie.VoteCount,
		Popularity:    movie.Popularity,
		Language:      movie.OriginalLanguage,
		Adult:         movie.Adult,
		Genres:        movie.GenreIDs,
		HasPoster:     movie.PosterPath != "",
	}
	if released, err := time.Parse(time.DateOnly, movie.ReleaseDate); err == nil {
		env.Released = released
	}
	if owned != nil {
		env.Owned = owned.Owned(movie.ID)
	}
	return env
}

// helpers are the functions available to every expression
func helpers() []expr.Option {
	return []expr.Option{
		expr.Function("contains", func(params ...any) (any, error) {
			return strings.Contains(strings.ToLower(params[0].(string)), strings.ToLower(params[1].(string))), nil
		}, new(func(string, string) bool)),
		expr.Function("startsWith", func(params ...any) (any, error) {
			return strings.HasPrefix(strings.ToLower(params[0].(string)), strings.ToLower(params[1].(string))), nil
		}, new(func(string, string) bool)),
		expr.Function("daysSince", func(params ...any) (any, error) {
			return int(time.Since(params[0].(time.Time)).Hours() / 24), nil
		}, new(func(time.Time) int)),
		expr.Function("daysAgo", func(params ...any) (any, error) {
			return time.Now().AddDate(0, 0, -params[0].(int)), nil
		}, new(func(int) time.Time)),
		expr.Function("yearsAgo", func(params ...any) (any, error) {
			return time.Now().AddDate(-params[0].(int), 0, 0), nil
		}, new(func(int) time.Time)),
		expr.Function("parseDate", func(params ...any) (any, error) {
			t, err := time.Parse(time.DateOnly, params[0].(string))
			if err != nil {
				return nil, fmt.Errorf("parseDate: %w", err)
			}
			return t, nil
		}, new(func(string) time.Time)),
	}
}

// Filter is a compiled display filter. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	owned      Ownership
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// String returns the source expression
func (f *Filter) String() string {
	return f.expression
}

// Evaluate runs the filter against a movie
func (f *Filter) Evaluate(movie tmdb.Movie) (bool, error) {
	out, err := expr.Run(f.program, newEnv(movie, f.owned))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieID:    movie.ID,
			Title:      movie.Title,
			Err:        err,
		}
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Match reports whether movie passes the filter. Evaluation errors count as
// a mismatch.
func (f *Filter) Match(movie tmdb.Movie) bool {
	matched, err := f.Evaluate(movie)
	return err == nil && matched
}

// Compiler compiles expressions into filters
type Compiler struct {
	cache *lruCache[*Filter]
	owned Ownership
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache keeps up to size compiled filters
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Filter](size)
		}
	}
}

// WithOwnership exposes library membership to expressions as `owned`
func WithOwnership(owned Ownership) CompilerOption {
	return func(c *Compiler) {
		c.owned = owned
	}
}

// NewCompiler creates a Compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile parses and type-checks an expression. Expressions must yield a
// boolean.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Err: ErrEmptyExpression}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	opts := append([]expr.Option{expr.Env(movieEnv{}), expr.AsBool()}, helpers()...)
	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	filter := &Filter{
		expression: expression,
		program:    program,
		owned:      c.owned,
	}
	if c.cache != nil {
		c.cache.Put(expression, filter)
	}
	return filter, nil
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Size()
}

// Validate reports whether expression compiles
func Validate(expression string) error {
	_, err := NewCompiler().Compile(expression)
	return err
}

// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/naka-gawa/ghstats/internal/gateway"
	"github.com/sirupsen/logrus"
)

// loginPattern is the character set GitHub allows in logins.
var loginPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?$`)

// BatchRequest is one invocation: the logins to fetch and the contribution window.
type BatchRequest struct {
	Logins []string `validate:"required,min=1,dive,ghlogin"`
	From   string   `validate:"required,datetime=2006-01-02"`
	To     string   `validate:"required,datetime=2006-01-02"`
	// Branch is the ref summarised for contributed repositories, empty means main.
	Branch string `validate:"omitempty,max=255,printascii"`
}

// Aggregator is the use case for fetching the activity of a batch of users.
type Aggregator struct {
	fetcher  gateway.Fetcher
	validate *validator.Validate
	logger   logrus.FieldLogger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger logrus.FieldLogger) *Aggregator {
	validate := validator.New()
	// Registration only fails for empty or reserved tag names.
	_ = validate.RegisterValidation("ghlogin", func(fl validator.FieldLevel) bool {
		return loginPattern.MatchString(fl.Field().String())
	})
	return &Aggregator{
		fetcher:  fetcher,
		validate: validate,
		logger:   logger,
	}
}

// Aggregate validates req and fetches one activity record per login, strictly
// sequentially and in input order. The first failure aborts the batch: no
// further logins are fetched and no partial result is returned.
func (a *Aggregator) Aggregate(ctx context.Context, req BatchRequest) ([]*domain.UserActivity, error) {
	if err := a.validate.Struct(req); err != nil {
		return nil, &domain.ConfigError{Msg: "invalid request", Err: err}
	}
	window, err := domain.ParseWindow(req.From, req.To)
	if err != nil {
		return nil, err
	}

	a.logger.WithField("users", len(req.Logins)).Debug("Usecase: Starting batch fetch...")
	results := make([]*domain.UserActivity, 0, len(req.Logins))
	for i, login := range req.Logins {
		a.logger.Debugf("[%d/%d] %s", i+1, len(req.Logins), login)
		activity, err := a.fetcher.FetchUserActivity(ctx, gateway.NewActivityQuery(login, window, req.Branch))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch activity of %q: %w", login, err)
		}
		results = append(results, activity)
	}

	a.logger.Debug("Usecase: Batch fetch complete.")
	return results, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/custodia-labs/cma-core/internal/core/domain"
	"github.com/custodia-labs/cma-core/internal/core/ports/driven/mocks"
)

type publishingWorld struct {
	store   *mocks.MockReportStore
	svc     *publishService
	results []*domain.PublishResult
	err     error
}

func (w *publishingWorld) aDraftReport(id string) error {
	w.store.Put(&domain.CmaReport{ID: id})
	return nil
}

func (w *publishingWorld) iPublishReport(id string) error {
	result, err := w.svc.Publish(context.Background(), id)
	if err != nil {
		w.err = err
		return nil
	}
	w.results = append(w.results, result)
	return nil
}

func (w *publishingWorld) iUnpublishReport(id string) error {
	return w.svc.Unpublish(context.Background(), id)
}

func (w *publishingWorld) reportIsInState(id, state string) error {
	status, err := w.svc.Status(context.Background(), id)
	if err != nil {
		return err
	}
	want := domain.PublishStateDraft
	if state == "published" {
		want = domain.PublishStatePublished
	}
	if status.State != want {
		return fmt.Errorf("expected %s, got %s", want, status.State)
	}
	return nil
}

func (w *publishingWorld) reportStillHasItsToken(id string) error {
	status, err := w.svc.Status(context.Background(), id)
	if err != nil {
		return err
	}
	if len(w.results) == 0 || status.Token != w.results[0].Token {
		return fmt.Errorf("token changed to %q", status.Token)
	}
	return nil
}

func (w *publishingWorld) tokenIsHex() error {
	if len(w.results) == 0 {
		return errors.New("nothing published")
	}
	if !hexToken.MatchString(w.results[0].Token) {
		return fmt.Errorf("unexpected token %q", w.results[0].Token)
	}
	return nil
}

func (w *publishingWorld) siteURLEndsWithToken() error {
	r := w.results[len(w.results)-1]
	if !strings.HasSuffix(r.SiteURL, "/site/"+r.Token) {
		return fmt.Errorf("site url %q does not end with token", r.SiteURL)
	}
	return nil
}

func (w *publishingWorld) resultsShareToken() error {
	if len(w.results) < 2 {
		return fmt.Errorf("expected two publish results, got %d", len(w.results))
	}
	first, last := w.results[0].Token, w.results[len(w.results)-1].Token
	if first != last {
		return fmt.Errorf("token changed from %q to %q", first, last)
	}
	return nil
}

func (w *publishingWorld) theErrorIs(msg string) error {
	if w.err == nil {
		return errors.New("expected an error")
	}
	if msg == "not found" && !errors.Is(w.err, domain.ErrNotFound) {
		return fmt.Errorf("expected not found, got %v", w.err)
	}
	return nil
}

func initializePublishingScenario(sc *godog.ScenarioContext) {
	w := &publishingWorld{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		w.store = mocks.NewMockReportStore()
		w.svc = newTestPublisher(w.store)
		w.results = nil
		w.err = nil
		return ctx, nil
	})

	sc.Step(`^a draft report "([^"]*)"$`, w.aDraftReport)
	sc.Step(`^I publish report "([^"]*)"(?: again)?$`, w.iPublishReport)
	sc.Step(`^I unpublish report "([^"]*)"$`, w.iUnpublishReport)
	sc.Step(`^report "([^"]*)" is (?:a )?(draft|published)$`, w.reportIsInState)
	sc.Step(`^report "([^"]*)" still has its token$`, w.reportStillHasItsToken)
	sc.Step(`^the public token is 64 hex characters$`, w.tokenIsHex)
	sc.Step(`^the site URL ends with the public token$`, w.siteURLEndsWithToken)
	sc.Step(`^both publish results share the same token$`, w.resultsShareToken)
	sc.Step(`^the error is "([^"]*)"$`, w.theErrorIs)
}

func TestReportPublishingFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "report-publishing",
		ScenarioInitializer: initializePublishingScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("report publishing features failed")
	}
}

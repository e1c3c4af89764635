package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	// ids remembers fruits by name, so a deleted fruit can still be visited
	ids map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:  tc,
		ids: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a fruits server is running$`, s.aFruitsServerIsRunning)
	sc.Step(`^the collection is empty$`, s.theCollectionIsEmpty)
	sc.Step(`^a fruit "([^"]*)" with color "([^"]*)" exists$`, s.aFruitExists)

	// Request steps
	sc.Step(`^I visit "([^"]*)"$`, s.iVisit)
	sc.Step(`^I visit the page of fruit "([^"]*)"$`, s.iVisitThePageOfFruit)
	sc.Step(`^I visit the edit page of fruit "([^"]*)"$`, s.iVisitTheEditPageOfFruit)
	sc.Step(`^I submit the new fruit form with:$`, s.iSubmitTheNewFruitForm)
	sc.Step(`^I submit the edit form of fruit "([^"]*)" with:$`, s.iSubmitTheEditFormOfFruit)
	sc.Step(`^I press delete on fruit "([^"]*)"$`, s.iPressDeleteOnFruit)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^I should be redirected to "([^"]*)"$`, s.iShouldBeRedirectedTo)
	sc.Step(`^the page should contain "([^"]*)"$`, s.thePageShouldContain)
	sc.Step(`^the response should be a JSON list of the starter fruits$`, s.theResponseShouldBeTheStarterFruits)
	sc.Step(`^the response should be a JSON error$`, s.theResponseShouldBeAJSONError)

	// Collection steps
	sc.Step(`^the collection should contain exactly (\d+) fruits?$`, s.theCollectionShouldContainExactly)
	sc.Step(`^the collection should contain only the starter fruits$`, s.theCollectionShouldContainOnlyTheStarterFruits)
	sc.Step(`^the fruit "([^"]*)" should have color "([^"]*)" and be ready to eat$`, s.theFruitShouldBeReady)
	sc.Step(`^the fruit "([^"]*)" should have color "([^"]*)" and not be ready to eat$`, s.theFruitShouldNotBeReady)
	sc.Step(`^there should be no fruit "([^"]*)"$`, s.thereShouldBeNoFruit)
}

// Background steps

func (s *StepsContext) aFruitsServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) theCollectionIsEmpty() error {
	return s.tc.Fruits.DeleteAll(context.Background())
}

func (s *StepsContext) aFruitExists(name, color string) error {
	created, err := s.tc.Fruits.Create(context.Background(), store.Fruit{Name: name, Color: color})
	if err != nil {
		return err
	}
	s.ids[name] = created.ID
	return nil
}

// Request steps

func (s *StepsContext) do(method, path string, form url.Values) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) iVisit(path string) error {
	return s.do("GET", path, nil)
}

func (s *StepsContext) idOf(name string) (string, error) {
	if id, ok := s.ids[name]; ok {
		return id, nil
	}
	fruit, err := s.findFruit(name)
	if err != nil {
		return "", err
	}
	if fruit == nil {
		return "", fmt.Errorf("fruit %q does not exist", name)
	}
	s.ids[name] = fruit.ID
	return fruit.ID, nil
}

func (s *StepsContext) iVisitThePageOfFruit(name string) error {
	id, err := s.idOf(name)
	if err != nil {
		return err
	}
	return s.do("GET", "/fruits/"+id, nil)
}

func (s *StepsContext) iVisitTheEditPageOfFruit(name string) error {
	id, err := s.idOf(name)
	if err != nil {
		return err
	}
	return s.do("GET", "/fruits/"+id+"/edit", nil)
}

// formFromTable reads a two column table of field and value
func formFromTable(table *godog.Table) url.Values {
	form := url.Values{}
	for _, row := range table.Rows {
		if len(row.Cells) < 2 {
			continue
		}
		form.Set(row.Cells[0].Value, row.Cells[1].Value)
	}
	return form
}

func (s *StepsContext) iSubmitTheNewFruitForm(table *godog.Table) error {
	return s.do("POST", "/fruits", formFromTable(table))
}

func (s *StepsContext) iSubmitTheEditFormOfFruit(name string, table *godog.Table) error {
	id, err := s.idOf(name)
	if err != nil {
		return err
	}
	// Same request the edit page's form makes
	return s.do("POST", "/fruits/"+id+"?_method=PUT", formFromTable(table))
}

func (s *StepsContext) iPressDeleteOnFruit(name string) error {
	id, err := s.idOf(name)
	if err != nil {
		return err
	}
	return s.do("POST", "/fruits/"+id+"?_method=DELETE", url.Values{})
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iShouldBeRedirectedTo(location string) error {
	if s.response.StatusCode != http.StatusFound {
		return fmt.Errorf("expected a redirect, got %d: %s", s.response.StatusCode, string(s.responseBody))
	}
	if got := s.response.Header.Get("Location"); got != location {
		return fmt.Errorf("expected redirect to %q, got %q", location, got)
	}
	return nil
}

func (s *StepsContext) thePageShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected page to contain %q, got: %s", text, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeTheStarterFruits() error {
	var fruits []store.Fruit
	if err := json.Unmarshal(s.responseBody, &fruits); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return matchStarterFruits(fruits)
}

func (s *StepsContext) theResponseShouldBeAJSONError() error {
	if ct := s.response.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return fmt.Errorf("expected JSON, got content type %q", ct)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if _, ok := result["error"]; !ok {
		return fmt.Errorf("expected an error key in %s", string(s.responseBody))
	}
	return nil
}

// Collection steps

func (s *StepsContext) findFruit(name string) (*store.Fruit, error) {
	all, err := s.tc.Fruits.List(context.Background())
	if err != nil {
		return nil, err
	}
	for _, f := range all {
		if f.Name == name {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (s *StepsContext) theCollectionShouldContainExactly(count int) error {
	all, err := s.tc.Fruits.List(context.Background())
	if err != nil {
		return err
	}
	if len(all) != count {
		return fmt.Errorf("expected %d fruits, got %d", count, len(all))
	}
	return nil
}

func (s *StepsContext) theCollectionShouldContainOnlyTheStarterFruits() error {
	all, err := s.tc.Fruits.List(context.Background())
	if err != nil {
		return err
	}
	return matchStarterFruits(all)
}

func (s *StepsContext) theFruitShouldBeReady(name, color string) error {
	return s.checkFruit(name, color, true)
}

func (s *StepsContext) theFruitShouldNotBeReady(name, color string) error {
	return s.checkFruit(name, color, false)
}

func (s *StepsContext) checkFruit(name, color string, ready bool) error {
	fruit, err := s.findFruit(name)
	if err != nil {
		return err
	}
	if fruit == nil {
		return fmt.Errorf("fruit %q does not exist", name)
	}
	if fruit.Color != color {
		return fmt.Errorf("expected %s to be %s, got %s", name, color, fruit.Color)
	}
	if fruit.ReadyToEat != ready {
		return fmt.Errorf("expected %s readyToEat=%t, got %t", name, ready, fruit.ReadyToEat)
	}
	return nil
}

func (s *StepsContext) thereShouldBeNoFruit(name string) error {
	fruit, err := s.findFruit(name)
	if err != nil {
		return err
	}
	if fruit != nil {
		return fmt.Errorf("fruit %q should not exist but does", name)
	}
	return nil
}

// matchStarterFruits checks names, colors and flags regardless of order
func matchStarterFruits(fruits []store.Fruit) error {
	starters := store.StarterFruits()
	if len(fruits) != len(starters) {
		return fmt.Errorf("expected %d fruits, got %d", len(starters), len(fruits))
	}

	want := make(map[string]store.Fruit, len(starters))
	for _, f := range starters {
		want[f.Name] = f
	}
	for _, f := range fruits {
		w, ok := want[f.Name]
		if !ok {
			return fmt.Errorf("unexpected fruit %q", f.Name)
		}
		if f.Color != w.Color || f.ReadyToEat {
			return fmt.Errorf("fruit %q: got color %q readyToEat %t", f.Name, f.Color, f.ReadyToEat)
		}
		if f.ID == "" {
			return fmt.Errorf("fruit %q has no id", f.Name)
		}
		delete(want, f.Name)
	}
	return nil
}

//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/bill"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	"github.com/finance-tracker/moneyflow/internal/infra/scheduler"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-z_]+)(?::([a-z_-]+))?\}\}`)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("api server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	_, err := t.ensureUser(email)
	return err
}

func (t *testContext) ensureUser(email string) (*entity.User, error) {
	ctx := context.Background()
	userRepo := persistence.NewUserRepository(t.db.DbConn)

	if user, err := userRepo.FindByEmail(ctx, email); err == nil {
		return user, nil
	}

	username := strings.SplitN(email, "@", 2)[0]
	user := entity.NewUser(username, email, hashPassword(testPassword))
	if err := userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return user, nil
}

// iAmLoggedInAs creates the user when missing and logs in through the API.
func (t *testContext) iAmLoggedInAs(email string) error {
	user, err := t.ensureUser(email)
	if err != nil {
		return err
	}
	t.saved["user_id"] = user.ID.String()

	payload, _ := json.Marshal(dto.LoginRequest{Email: email, Password: testPassword})
	t.accessToken = ""
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}

	access, _ := getFieldValue(t.response.body, "data.accessToken").(string)
	refresh, _ := getFieldValue(t.response.body, "data.refreshToken").(string)
	if access == "" || refresh == "" {
		return fmt.Errorf("login returned no tokens: %v", t.response.body)
	}
	t.accessToken = access
	t.refreshToken = refresh
	t.response = nil
	return nil
}

func (t *testContext) currentUserID() (uuid.UUID, error) {
	id, err := uuid.Parse(t.saved["user_id"])
	if err != nil {
		return uuid.Nil, errors.New("no user is logged in")
	}
	return id, nil
}

// aCardWasCreatedOn stores a card with the bills it would have had on its creation date.
func (t *testContext) aCardWasCreatedOn(description string, closingDay, dueDay int, created string) error {
	userID, err := t.currentUserID()
	if err != nil {
		return err
	}
	createdAt, err := dto.ParseDate(created)
	if err != nil {
		return err
	}

	card := entity.NewCard(userID, description, decimal.NewFromInt(5000), "visa", closingDay, dueDay, nil)
	card.CreatedAt = createdAt
	ledger := persistence.NewLedger(t.db.DbConn)
	if err := ledger.CreateCardWithBills(context.Background(), card, bill.FirstBills(card, createdAt)); err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	t.saved["card_"+strings.ToLower(description)] = card.ID.String()
	return nil
}

func (t *testContext) aCardExpenseWasMade(amount, date, cardDescription string) error {
	userID, err := t.currentUserID()
	if err != nil {
		return err
	}
	cardID, err := uuid.Parse(t.saved["card_"+strings.ToLower(cardDescription)])
	if err != nil {
		return fmt.Errorf("card %q was not created in this scenario", cardDescription)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	day, err := dto.ParseDate(date)
	if err != nil {
		return err
	}

	txn := entity.NewTransaction(userID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted, value, "Card purchase", day)
	txn.CardID = &cardID
	return persistence.NewLedger(t.db.DbConn).Book(context.Background(), []*entity.Transaction{txn})
}

func (t *testContext) theSuggestionServiceProposes(categoryName string) error {
	t.suggester.categoryName = categoryName
	return nil
}

func (t *testContext) theSuggestionServiceIsUnavailable() error {
	t.suggester.unavailable = true
	return nil
}

func (t *testContext) theExternalAPIAnswers(method, path string, status int, body *godog.DocString) error {
	var decoded any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(body.Content)), &decoded); err != nil {
		return fmt.Errorf("invalid stub body: %w", err)
	}
	t.api.SetResponse(method, path, status, decoded)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

// theBillingProviderSendsAnEvent posts a webhook signed with the test secret.
func (t *testContext) theBillingProviderSendsAnEvent(eventType string, object *godog.DocString) error {
	var data map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(object.Content)), &data); err != nil {
		return fmt.Errorf("invalid event object: %w", err)
	}

	payload, err := json.Marshal(map[string]any{
		"id":     "evt_" + uuid.NewString(),
		"object": "event",
		"type":   eventType,
		"data":   map[string]any{"object": data},
	})
	if err != nil {
		return err
	}

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})

	accessToken := t.accessToken
	t.accessToken = ""
	t.headers["Stripe-Signature"] = signed.Header
	defer func() {
		t.accessToken = accessToken
		delete(t.headers, "Stripe-Signature")
	}()
	return t.executeRequest(http.MethodPost, "/api/v1/billing/webhook", payload)
}

// theBillJobsRunOn runs one scheduler cycle with the clock set to date.
func (t *testContext) theBillJobsRunOn(date string) error {
	day, err := dto.ParseDate(date)
	if err != nil {
		return err
	}
	t.clock.SetCurrentTime(day.Add(9 * time.Hour))

	jobs := t.injector.Jobs
	worker := scheduler.NewWorker(jobs.EnsureBills, jobs.RefreshStatuses, jobs.SendReminders, scheduler.WorkerConfig{
		DaysAhead: 3,
		Clock:     t.clock.Now,
	})
	return worker.RunOnce(context.Background())
}

func (t *testContext) replacePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		name, arg := parts[1], parts[2]
		switch name {
		case "access_token":
			return t.accessToken
		case "refresh_token":
			return t.refreshToken
		case "builtin":
			return entity.BuiltinCategoryID(arg).String()
		}
		if value, ok := t.saved[name]; ok {
			return value
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}
	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = decoded
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(text string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	raw, _ := json.Marshal(t.response.body)
	if !strings.Contains(string(raw), t.replacePlaceholders(text)) {
		return fmt.Errorf("response does not contain '%s': %s", text, raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	if actualValue := fmt.Sprintf("%v", value); actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	model, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	modelType := reflect.TypeOf(model).Elem()
	rows := reflect.New(reflect.SliceOf(modelType))

	query := t.db.DbConn.Model(model)
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(rows.Interface()).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if count := rows.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theExternalAPIShouldHaveReceived(count int, method, path string) error {
	if got := len(t.api.Requests(method, path)); got != count {
		return fmt.Errorf("expected %d %s %s requests, got %d", count, method, path, got)
	}
	return nil
}

func (t *testContext) theLastRequestShouldContain(method, path, text string) error {
	requests := t.api.Requests(method, path)
	if len(requests) == 0 {
		return fmt.Errorf("no %s %s request received", method, path)
	}
	// Stripe sends form-encoded bodies
	body := string(requests[len(requests)-1].Body)
	if unescaped, err := url.QueryUnescape(body); err == nil {
		body = unescaped
	}
	if !strings.Contains(body, t.replacePlaceholders(text)) {
		return fmt.Errorf("last %s %s request does not contain '%s': %s", method, path, text, body)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	field := object
	for _, current := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(current); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[current]
	}
	return field
}

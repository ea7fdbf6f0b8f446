// internal/app/response_checker.go
package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"
)

// ResponseChecker validates the shape of a decoded API payload.
type ResponseChecker struct {
	// Strict treats an empty homeworks list as a missing key, as the legacy bot did.
	Strict bool
}

// CheckResponse validates raw with the default (non-strict) checker.
func CheckResponse(raw any) ([]any, error) {
	return ResponseChecker{}.Check(raw)
}

// Check returns the homeworks list unchanged when raw is a well-formed payload.
func (rc ResponseChecker) Check(raw any) ([]any, error) {
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, homework.NewSchemaError(fmt.Sprintf("Ответ сервиса API не является словарем: %T", raw))
	}
	if isFalsy(payload[homework.KeyCurrentDate]) {
		return nil, homework.NewSchemaError("Ключ current_date в ответе API отсутствует")
	}

	value, present := payload[homework.KeyHomeworks]
	if !present || value == nil {
		return nil, homework.NewSchemaError("Ключ homeworks в ответе API отсутствует")
	}
	homeworks, ok := value.([]any)
	if !ok {
		return nil, homework.NewSchemaError("В ответе API под ключом homeworks данные не являются списком")
	}
	if rc.Strict && len(homeworks) == 0 {
		return nil, homework.NewSchemaError("Ключ homeworks в ответе API отсутствует")
	}
	return homeworks, nil
}

// ParseStatus turns one homework record into the chat message announcing its status.
func ParseStatus(record any) (string, error) {
	hw, ok := record.(map[string]any)
	if !ok {
		return "", homework.NewSchemaError(fmt.Sprintf("Домашняя работа в ответе API не является словарем: %T", record))
	}

	name, _ := hw[homework.KeyName].(string)
	if name == "" {
		return "", homework.NewSchemaError("Ключ homework_name в ответе API отсутствует")
	}

	status, _ := hw[homework.KeyStatus].(string)
	verdict, ok := homework.Verdict(homework.Status(status))
	if !ok {
		return "", homework.NewUnknownStatusError(hw[homework.KeyStatus])
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}

// isFalsy mirrors JSON truthiness: null, false, 0, "" and empty containers.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// internal/domain/homework/status.go
package homework

// Status is the review state of a submitted homework as reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// JSON keys of the homework-status API payload.
const (
	KeyCurrentDate = "current_date"
	KeyHomeworks   = "homeworks"
	KeyName        = "homework_name"
	KeyStatus      = "status"
)

var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the human-readable text for a known status.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// Package validator validates registration and roster payloads before anything is persisted.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	apperrors "hackreg/internal/errors"
	"hackreg/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// minPhoneDigits is the minimum number of digits in a phone number.
const minPhoneDigits = 10

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

// Engine returns the shared validator with custom rules and JSON field names registered.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		registerRules(v)
		engine = v
	})
	return engine
}

// RegisterCustomValidators registers all custom validators with gin's validator
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerRules(v)
	}
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("track", validateTrack)
	_ = v.RegisterValidation("foodpref", validateFoodPreference)
}

// validatePhone accepts numbers with at least 10 digits and common separators.
func validatePhone(fl validator.FieldLevel) bool {
	return isPhone(fl.Field().String())
}

func isPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}

func validateTrack(fl validator.FieldLevel) bool {
	return models.Track(fl.Field().String()).IsValid()
}

func validateFoodPreference(fl validator.FieldLevel) bool {
	return models.FoodPreference(fl.Field().String()).IsValid()
}

// fieldName reports the JSON name of a field, or its lower camel Go name
// when the field is not serialized.
func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return lowerFirst(fld.Name)
	}
	return name
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateRegistration checks a registration payload. Field rules are reported
// first, followed by the leader and roster size rules, so a single pass gives
// feedback for every field. It never panics on malformed input, malformed
// input is reported as issues.
func ValidateRegistration(req *models.RegistrationRequest) (*models.ValidatedRegistration, []apperrors.Issue) {
	if req == nil {
		return nil, []apperrors.Issue{{Path: "", Message: "Registration details are required"}}
	}

	normalized := *req
	normalized.TeamName = strings.TrimSpace(req.TeamName)
	normalized.UPIReference = strings.TrimSpace(req.UPIReference)
	normalized.Members = normalizeMembers(req.Members)

	issues := structIssues(&normalized)
	if len(normalized.Members) > 0 {
		issues = append(issues, leaderIssues(normalized.Members)...)
	}
	if validTeamSize(normalized.TeamSize) && len(normalized.Members) != normalized.TeamSize {
		issues = append(issues, apperrors.Issue{
			Path:    "members",
			Message: fmt.Sprintf("Team size is %d but %d members were provided", normalized.TeamSize, len(normalized.Members)),
		})
	}
	if len(issues) > 0 {
		return nil, issues
	}

	return &models.ValidatedRegistration{
		TeamName:     normalized.TeamName,
		Track:        normalized.Track,
		TeamSize:     normalized.TeamSize,
		UPIReference: normalized.UPIReference,
		Members:      normalized.Members,
		Receipt:      *normalized.Receipt,
	}, nil
}

// rosterUpdate is the validated shape of a leader's team edit.
type rosterUpdate struct {
	Track    models.Track         `json:"track" validate:"required,track"`
	TeamSize int                  `json:"teamSize" validate:"oneof=2 3 4 5"`
	Members  []models.MemberInput `json:"members" validate:"min=2,max=5,dive"`
}

// ValidateRosterUpdate checks a team edit and returns the normalized members.
func ValidateRosterUpdate(req *models.UpdateTeamRequest) ([]models.MemberInput, []apperrors.Issue) {
	if req == nil {
		return nil, []apperrors.Issue{{Path: "", Message: "Team details are required"}}
	}

	update := rosterUpdate{
		Track:    req.Track,
		TeamSize: req.TeamSize,
		Members:  normalizeMembers(req.Members),
	}

	issues := structIssues(&update)
	if len(update.Members) > 0 {
		issues = append(issues, leaderIssues(update.Members)...)
		issues = append(issues, repeatedEmailIssues(update.Members)...)
	}
	if len(issues) > 0 {
		return nil, issues
	}

	return update.Members, nil
}

func validTeamSize(size int) bool {
	return size >= models.MinTeamSize && size <= models.MaxTeamSize
}

// ValidateMember checks a single member added to an existing team.
// Absent mandatory fields yield ErrMissingFields; malformed values a ValidationError.
func ValidateMember(in models.MemberInput) (models.MemberInput, error) {
	in = in.Normalize()

	err := Engine().Struct(&in)
	if err == nil {
		return in, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return in, apperrors.NewValidationError([]apperrors.Issue{{Path: "", Message: err.Error()}})
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return in, apperrors.ErrMissingFields
		}
	}
	return in, apperrors.NewValidationError(toIssues(verrs))
}

func normalizeMembers(inputs []models.MemberInput) []models.MemberInput {
	if inputs == nil {
		return nil
	}
	members := make([]models.MemberInput, len(inputs))
	for i, in := range inputs {
		members[i] = in.Normalize()
	}
	return members
}

// leaderIssues enforces that the leader slot carries roll number and branch.
func leaderIssues(members []models.MemberInput) []apperrors.Issue {
	if len(members) == 0 {
		return []apperrors.Issue{{Path: "members", Message: "At least one member is required"}}
	}
	var issues []apperrors.Issue
	leader := members[0]
	if leader.RollNo == "" {
		issues = append(issues, apperrors.Issue{Path: "members.0.rollNo", Message: "Roll number is required for the team leader"})
	}
	if leader.Branch == "" {
		issues = append(issues, apperrors.Issue{Path: "members.0.branch", Message: "Branch is required for the team leader"})
	}
	return issues
}

// repeatedEmailIssues flags every member whose normalized email already
// appears earlier in the same roster.
func repeatedEmailIssues(members []models.MemberInput) []apperrors.Issue {
	var issues []apperrors.Issue
	seen := make(map[string]struct{}, len(members))
	for i, m := range members {
		if m.Email == "" {
			continue
		}
		if _, dup := seen[m.Email]; dup {
			issues = append(issues, apperrors.Issue{
				Path:    fmt.Sprintf("members.%d.email", i),
				Message: "Email is already used by another member of this team",
			})
			continue
		}
		seen[m.Email] = struct{}{}
	}
	return issues
}

func structIssues(s interface{}) []apperrors.Issue {
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return toIssues(verrs)
	}
	return []apperrors.Issue{{Path: "", Message: err.Error()}}
}

func toIssues(verrs validator.ValidationErrors) []apperrors.Issue {
	issues := make([]apperrors.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, apperrors.Issue{
			Path:    issuePath(fe.Namespace()),
			Message: issueMessage(fe),
		})
	}
	return issues
}

// issuePath turns "RegistrationRequest.members[0].email" into "members.0.email".
func issuePath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	} else {
		return ""
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

var fieldLabels = map[string]string{
	"teamName":       "Team name",
	"track":          "Track",
	"teamSize":       "Team size",
	"upiReference":   "UPI reference",
	"members":        "Members",
	"receipt":        "Payment receipt",
	"name":           "Name",
	"email":          "Email",
	"phone":          "Phone number",
	"college":        "College",
	"foodPreference": "Food preference",
	"filename":       "Receipt file name",
	"contentType":    "Receipt file type",
	"size":           "Receipt size",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func issueMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return label(field) + " is required"
	case "email":
		return "Enter a valid email address"
	case "phone":
		return fmt.Sprintf("Phone number must contain at least %d digits", minPhoneDigits)
	case "track":
		return "Track must be one of AI, IoT, Blockchain or OpenInnovation"
	case "foodpref":
		return "Food preference must be Veg or NonVeg"
	case "oneof":
		if field == "contentType" {
			return "Payment receipt must be a JPEG, PNG or PDF file"
		}
		if field == "teamSize" {
			return fmt.Sprintf("Team size must be between %d and %d", models.MinTeamSize, models.MaxTeamSize)
		}
		return fmt.Sprintf("%s must be one of %s", label(field), fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("At least %s members are required", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label(field), fe.Param())
	case "max":
		if field == "size" {
			return "Payment receipt must be 4MB or smaller"
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("At most %s members are allowed", fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", label(field), fe.Param())
	case "gt":
		if field == "size" {
			return "Payment receipt is empty"
		}
	}
	return fmt.Sprintf("%s is invalid", label(field))
}

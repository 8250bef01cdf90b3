// Package validation holds the declarative form schemas for signup,
// login and profile edit. Rules are evaluated on every change; a form
// submits only when Validate returns no field errors. Server-side
// rejections (duplicate email) are attached with SetFieldError so the
// view surfaces them next to the field, not only as a toast.
package validation

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field to its user-facing message.
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// SetFieldError attaches a server-reported failure to a field.
func (e FieldErrors) SetFieldError(field, message string) {
	e[field] = message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 영문자와 숫자를 각각 1자 이상 포함, 영문자/숫자 외 문자는 불허
	if err := v.RegisterValidation("letterdigit", hasLetterAndDigit); err != nil {
		panic(err)
	}
	return v
}

func hasLetterAndDigit(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// SignUpForm 회원가입 폼
type SignUpForm struct {
	Username        string `validate:"required,min=2,max=20"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8,letterdigit"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// LoginForm 로그인 폼. 비밀번호는 저장된 값과 비교만 하므로
// 회원가입보다 느슨한 규칙(최소 6자)을 쓴다.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// ProfileForm 회원정보 수정 폼. 새 비밀번호는 선택 입력이지만
// 입력되면 회원가입과 같은 규칙을 따른다.
type ProfileForm struct {
	Username        string `validate:"required,min=2,max=20"`
	NewPassword     string `validate:"omitempty,min=8,letterdigit"`
	ConfirmPassword string `validate:"required_with=NewPassword,eqfield=NewPassword"`
}

func (f SignUpForm) Validate() FieldErrors {
	return collect(validate.Struct(f))
}

func (f LoginForm) Validate() FieldErrors {
	return collect(validate.Struct(f))
}

func (f ProfileForm) Validate() FieldErrors {
	return collect(validate.Struct(f))
}

func collect(err error) FieldErrors {
	errs := FieldErrors{}
	if err == nil {
		return errs
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "입력값이 올바르지 않습니다."
		return errs
	}

	for _, fe := range validationErrs {
		if _, exists := errs[fe.Field()]; !exists {
			errs[fe.Field()] = fieldMessage(fe)
		}
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		switch fe.Tag() {
		case "required":
			return "사용자 이름을 입력해주세요."
		case "min":
			return "사용자 이름은 2자 이상이어야 합니다."
		case "max":
			return "사용자 이름은 20자 이하여야 합니다."
		}
	case "Email":
		switch fe.Tag() {
		case "required":
			return "이메일을 입력해주세요."
		case "email":
			return "유효한 이메일 주소를 입력해주세요."
		}
	case "Password", "NewPassword":
		switch fe.Tag() {
		case "required":
			return "비밀번호를 입력해주세요."
		case "min":
			if fe.Param() == "6" {
				return "비밀번호는 최소 6자 이상이어야 합니다."
			}
			return "비밀번호는 8자 이상이어야 합니다."
		case "letterdigit":
			return "비밀번호는 영문자와 숫자를 포함해야 합니다."
		}
	case "ConfirmPassword":
		switch fe.Tag() {
		case "required", "required_with":
			return "비밀번호 확인을 입력해주세요."
		case "eqfield":
			return "비밀번호가 일치하지 않습니다."
		}
	}
	return "입력값이 올바르지 않습니다."
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignUpFormValidate(t *testing.T) {
	valid := SignUpForm{
		Username:        "테스터",
		Email:           "user@example.com",
		Password:        "abc12345",
		ConfirmPassword: "abc12345",
	}

	tests := []struct {
		name      string
		mutate    func(*SignUpForm)
		wantField string
	}{
		{
			name:   "valid form",
			mutate: func(*SignUpForm) {},
		},
		{
			name:      "username too short",
			mutate:    func(f *SignUpForm) { f.Username = "a" },
			wantField: "Username",
		},
		{
			name:      "username too long",
			mutate:    func(f *SignUpForm) { f.Username = "123456789012345678901" },
			wantField: "Username",
		},
		{
			name:      "invalid email",
			mutate:    func(f *SignUpForm) { f.Email = "not-an-email" },
			wantField: "Email",
		},
		{
			name: "password without digits",
			mutate: func(f *SignUpForm) {
				f.Password = "abcdefgh"
				f.ConfirmPassword = "abcdefgh"
			},
			wantField: "Password",
		},
		{
			name: "password without letters",
			mutate: func(f *SignUpForm) {
				f.Password = "12345678"
				f.ConfirmPassword = "12345678"
			},
			wantField: "Password",
		},
		{
			name: "password too short",
			mutate: func(f *SignUpForm) {
				f.Password = "abc1234"
				f.ConfirmPassword = "abc1234"
			},
			wantField: "Password",
		},
		{
			name: "password with special characters",
			mutate: func(f *SignUpForm) {
				f.Password = "abc1234!"
				f.ConfirmPassword = "abc1234!"
			},
			wantField: "Password",
		},
		{
			name:      "confirm password mismatch",
			mutate:    func(f *SignUpForm) { f.ConfirmPassword = "abc12346" },
			wantField: "ConfirmPassword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			errs := form.Validate()
			if tt.wantField == "" {
				assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
				return
			}
			assert.False(t, errs.Valid())
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestSignUpFormMessages(t *testing.T) {
	form := SignUpForm{
		Username:        "a",
		Email:           "not-an-email",
		Password:        "abcdefgh",
		ConfirmPassword: "다름",
	}

	errs := form.Validate()

	assert.Equal(t, "사용자 이름은 2자 이상이어야 합니다.", errs["Username"])
	assert.Equal(t, "유효한 이메일 주소를 입력해주세요.", errs["Email"])
	assert.Equal(t, "비밀번호는 영문자와 숫자를 포함해야 합니다.", errs["Password"])
	assert.Equal(t, "비밀번호가 일치하지 않습니다.", errs["ConfirmPassword"])
}

func TestLoginFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		form      LoginForm
		wantField string
	}{
		{
			name: "valid form",
			form: LoginForm{Email: "user@example.com", Password: "abc123"},
		},
		{
			name:      "password too short",
			form:      LoginForm{Email: "user@example.com", Password: "12345"},
			wantField: "Password",
		},
		{
			name:      "missing email",
			form:      LoginForm{Password: "abc123"},
			wantField: "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantField == "" {
				assert.True(t, errs.Valid())
				return
			}
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestLoginFormShortPasswordMessage(t *testing.T) {
	errs := LoginForm{Email: "user@example.com", Password: "12345"}.Validate()
	assert.Equal(t, "비밀번호는 최소 6자 이상이어야 합니다.", errs["Password"])
}

func TestProfileFormValidate(t *testing.T) {
	t.Run("password change is optional", func(t *testing.T) {
		errs := ProfileForm{Username: "테스터"}.Validate()
		assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
	})

	t.Run("new password follows signup rules", func(t *testing.T) {
		errs := ProfileForm{
			Username:        "테스터",
			NewPassword:     "abcdefgh",
			ConfirmPassword: "abcdefgh",
		}.Validate()
		assert.Contains(t, errs, "NewPassword")
	})

	t.Run("new password needs confirmation", func(t *testing.T) {
		errs := ProfileForm{
			Username:    "테스터",
			NewPassword: "abc12345",
		}.Validate()
		assert.Contains(t, errs, "ConfirmPassword")
	})
}

func TestSetFieldError(t *testing.T) {
	errs := SignUpForm{
		Username:        "테스터",
		Email:           "user@example.com",
		Password:        "abc12345",
		ConfirmPassword: "abc12345",
	}.Validate()
	assert.True(t, errs.Valid())

	errs.SetFieldError("Email", "이미 사용 중인 이메일입니다.")
	assert.False(t, errs.Valid())
	assert.Equal(t, "이미 사용 중인 이메일입니다.", errs["Email"])
}

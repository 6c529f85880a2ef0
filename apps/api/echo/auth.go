package echoapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/admin"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
)

// principal kinds, encoded in the JWT subject as "<kind>:<id>"
const (
	kindStudent = "student"
	kindTeacher = "teacher"
	kindAdmin   = "admin"
)

// appJWTConfig is the default JWT auth middleware config.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.SecretKey),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "userToken",
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Name         string `json:"name,omitempty"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	IsStudent    bool   `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsTeacher    bool   `json:"is_teacher,omitempty"` // -> TEACHER PORTAL
	IsAdmin      bool   `json:"is_admin,omitempty"`   // -> ADMIN PORTAL
}

// PrincipalID returns the numeric ID encoded in the subject.
func (c Claims) PrincipalID() int {
	parts := strings.SplitN(c.Subject, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	id, _ := strconv.Atoi(parts[1])
	return id
}

func newClaims(kind string, id int, name, uname, email string, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    core.Conf.AppName,
			Subject:   fmt.Sprintf("%s:%d", kind, id),
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Name:         name,
		Username:     uname,
		Email:        email,
		IsStudent:    kind == kindStudent,
		IsTeacher:    kind == kindTeacher,
		IsAdmin:      kind == kindAdmin,
	}
}

func GetStudentClaims(std student.Student, origIat ...int64) *Claims {
	return newClaims(kindStudent, std.ID, std.Name, std.Username, std.Email, origIat...)
}

func GetTeacherClaims(tch teacher.Teacher, origIat ...int64) *Claims {
	return newClaims(kindTeacher, tch.ID, tch.Name, tch.Username, tch.Email, origIat...)
}

func GetAdminClaims(adm admin.Admin, origIat ...int64) *Claims {
	return newClaims(kindAdmin, adm.ID, adm.Name, adm.Username, adm.Email, origIat...)
}

// authenticate looks the username up in the student, teacher and admin
// accounts in that order, and checks the password against the first match.
func authenticate(uname, pwd string, deps ServerDeps) (*Claims, error) {
	if std, err := deps.StudentSvc.GetByUsername(uname); err == nil {
		if err = std.CheckPassword(pwd); err != nil {
			return nil, errAuthenticationFailed
		}
		return GetStudentClaims(std), nil
	} else if errors.Cause(err) != student.ErrNotFound {
		return nil, errors.Wrap(err, "finding student by username")
	}

	if tch, err := deps.TeacherSvc.GetByUsername(uname); err == nil {
		if err = tch.CheckPassword(pwd); err != nil {
			return nil, errAuthenticationFailed
		}
		return GetTeacherClaims(tch), nil
	} else if errors.Cause(err) != teacher.ErrNotFound {
		return nil, errors.Wrap(err, "finding teacher by username")
	}

	if adm, err := deps.AdminSvc.GetByUsername(uname); err == nil {
		if err = adm.CheckPassword(pwd); err != nil {
			return nil, errAuthenticationFailed
		}
		return GetAdminClaims(adm), nil
	} else if errors.Cause(err) != admin.ErrNotFound {
		return nil, errors.Wrap(err, "finding admin by username")
	}

	return nil, errAuthenticationFailed
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func refreshToken(ctx echo.Context, deps ServerDeps) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(core.Conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	var newClms *Claims
	switch {
	case claims.IsStudent:
		std, err := deps.StudentSvc.GetByID(claims.PrincipalID())
		if err != nil {
			return "", errors.Wrap(err, "finding student by ID")
		}
		newClms = GetStudentClaims(std, claims.OrigIssuedAt)
	case claims.IsTeacher:
		tch, err := deps.TeacherSvc.GetByID(claims.PrincipalID())
		if err != nil {
			return "", errors.Wrap(err, "finding teacher by ID")
		}
		newClms = GetTeacherClaims(tch, claims.OrigIssuedAt)
	case claims.IsAdmin:
		adm, err := deps.AdminSvc.GetByID(claims.PrincipalID())
		if err != nil {
			return "", errors.Wrap(err, "finding admin by ID")
		}
		newClms = GetAdminClaims(adm, claims.OrigIssuedAt)
	default:
		return "", errUnauthorized
	}

	token, err := GenerateToken(newClms)
	return token, errors.Wrap(err, "generating token")
}

// Auth API

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{deps: deps}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/token-refresh", api.refreshToken, jwt)
}

type authApi struct {
	deps ServerDeps
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := authenticate(data.Username, data.Password, api.deps)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.deps)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "character not found",
			expected: "NOT_FOUND: character not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.InvalidSelection("subclass does not match class").
		WithMeta("field", "subclass").
		WithMeta("value", "evocation")

	s.Assert().Equal("subclass", err.Meta["field"])
	s.Assert().Equal("evocation", err.Meta["value"])

	s.Assert().Equal("subclass", err.Field())
	s.Assert().Equal("", errors.Internal("no field").Field())
}

func (s *ErrorsTestSuite) TestWrapCopiesMeta() {
	base := errors.InvalidSelection("not offered").WithMeta("field", "race")
	wrapped := errors.Wrap(base, "set rejected").WithMeta("field", "subrace")

	s.Assert().Equal(errors.CodeInvalidSelection, wrapped.Code)
	s.Assert().Equal("subrace", wrapped.Field())
	s.Assert().Equal("race", base.Field())
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("open 5e-SRD-Races.json: no such file")
	wrapped := errors.Wrap(baseErr, "failed to load races")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to load races", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.DataLoad("required category is empty")
	wrapped := errors.Wrap(baseErr, "registry unavailable")

	s.Assert().Equal(errors.CodeDataLoad, wrapped.Code)
	s.Assert().Equal("registry unavailable", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("dial tcp: connection refused")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "draft store unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("draft store unavailable", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"DataLoad", func() *errors.Error { return errors.DataLoad("test") }, errors.CodeDataLoad},
		{"InvalidSelection", func() *errors.Error { return errors.InvalidSelection("test") }, errors.CodeInvalidSelection},
		{"InconsistentDraft", func() *errors.Error { return errors.InconsistentDraft("test") }, errors.CodeInconsistentDraft},
		{"ExportMapping", func() *errors.Error { return errors.ExportMapping("test") }, errors.CodeExportMapping},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.NotFoundf("race %s not found", "lizardfolk")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("race lizardfolk not found", err.Message)

	err2 := errors.InvalidArgumentf("invalid level: %d", 25)
	s.Assert().Equal(errors.CodeInvalidArgument, err2.Code)
	s.Assert().Equal("invalid level: 25", err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("test")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().False(errors.IsInvalidArgument(notFoundErr))

	s.Assert().True(errors.HasCode(wrappedErr, errors.CodeNotFound))
	s.Assert().False(errors.HasCode(nil, errors.CodeOK))
	s.Assert().True(errors.IsInternal(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestWrapWithCodeOverridesCause() {
	base := errors.NotFound("no active draft")
	wrapped := errors.WrapWithCodef(base, errors.CodeFailedPrecondition, "draft %s", "show")

	s.Assert().True(errors.IsFailedPrecondition(wrapped))
	s.Assert().Equal("draft show", wrapped.Message)
	s.Assert().True(errors.Is(wrapped, errors.NotFound("")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.NotFound("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestExitCode() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 0},
		{errors.CodeDataLoad, 2},
		{errors.CodeInvalidSelection, 3},
		{errors.CodeExportMapping, 3},
		{errors.CodeNotFound, 4},
		{errors.CodeInternal, 1},
		{errors.CodeInconsistentDraft, 1},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.ExitCode())
		})
	}
}

func (s *ErrorsTestSuite) TestDisplay() {
	s.Run("nil error", func() {
		s.Assert().Equal("", errors.Display(nil))
	})

	s.Run("selection error names the field", func() {
		err := errors.InvalidSelectionf("%q is not a legal subclass for wizard", "berserker").
			WithMeta("field", "subclass")
		s.Assert().Equal(`"berserker" is not a legal subclass for wizard (field subclass)`, errors.Display(err))
	})

	s.Run("internal errors are not shown verbatim", func() {
		err := errors.InconsistentDraft("class index missing from registry")
		s.Assert().NotContains(errors.Display(err), "registry")
	})

	s.Run("data load includes cause", func() {
		err := errors.WrapWithCode(fmt.Errorf("stat data: no such file"), errors.CodeDataLoad, "dataset root missing")
		s.Assert().Equal("dataset root missing: stat data: no such file", errors.Display(err))
	})

	s.Run("validation errors are listed in order", func() {
		vb := errors.NewValidationBuilder()
		vb.RequiredField("tuning").RequiredField("data_root")
		s.Assert().Equal("invalid configuration: data_root is required; tuning is required", errors.Display(vb.Build()))
	})

	s.Run("plain errors pass through", func() {
		s.Assert().Equal("boom", errors.Display(fmt.Errorf("boom\n")))
	})
}

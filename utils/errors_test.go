package utils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/fixture"
	"github.com/c2fo/fixture/utils"
)

/**********************************
 ************TESTS*****************
 **********************************/

type errorsSuite struct {
	suite.Suite
}

func (s *errorsSuite) TestWrapOperationError() {
	testError := errors.New("test error")

	err := utils.WrapOperationError(utils.OpPutObject, "bucket", "key", testError, func(error) (int, string) {
		return 403, "AccessDenied"
	})

	var oe *fixture.OperationError
	s.Require().ErrorAs(err, &oe)
	s.Equal(utils.OpPutObject, oe.Op)
	s.Equal("bucket", oe.Container)
	s.Equal("key", oe.Key)
	s.Equal(403, oe.StatusCode)
	s.Equal("AccessDenied", oe.Code)
	s.ErrorIs(err, testError)
}

func (s *errorsSuite) TestWrapOperationError_Nil() {
	s.NoError(utils.WrapOperationError(utils.OpGetObject, "bucket", "key", nil, nil))
}

func (s *errorsSuite) TestWrapOperationError_NoClassifier() {
	err := utils.WrapOperationError(utils.OpListContainers, "", "", errors.New("dial tcp: refused"), nil)
	s.EqualError(err, "list containers: dial tcp: refused")
}

func (s *errorsSuite) TestWrapOperationError_AlreadyWrapped() {
	inner := &fixture.OperationError{Op: utils.OpDeleteObject, Container: "a", Err: errors.New("x")}
	err := utils.WrapOperationError(utils.OpDeleteContainer, "b", "", inner, nil)
	s.Same(inner, err)
}

func TestErrors(t *testing.T) {
	suite.Run(t, new(errorsSuite))
}

package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"agroadvisor/entities"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(entities.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, Status(fmt.Errorf("%w: name", entities.ErrInvalidInput)))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("disk full")))
}

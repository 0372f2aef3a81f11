package httperr

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond translates an error coming out of the catalog layers into a status
// and body. Unknown errors are logged, attached to the gin context for the
// error reporting middleware and answered with a generic message.
func Respond(c *gin.Context, entity string, err error) {
	code, ok := BusinessCode(err)
	if !ok {
		log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, entity, err)
		_ = c.Error(err)
		Internal(c, "internal_error", "Não foi possível concluir a operação.")
		return
	}

	switch code {
	case CodeDuplicate:
		Conflict(c, code, "Já existe um registro de "+entity+" com os mesmos dados.")
	case CodeInUse:
		Conflict(c, code, "O registro de "+entity+" é referenciado por outros registros.")
	case CodeConflict:
		BadRequest(c, code, "Existe outro registro de "+entity+" com os mesmos dados.")
	case CodeInvalidReference:
		BadRequest(c, code, "O registro de "+entity+" referencia um registro inexistente.")
	case CodeNotFound:
		NotFound(c, code, "Registro de "+entity+" não encontrado.")
	default:
		BadRequest(c, code, "Requisição inválida.")
	}
}

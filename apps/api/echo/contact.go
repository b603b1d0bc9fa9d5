package echoapi

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
)

type contactApi struct {
	mailSvc core.EmailService
}

func registerContactAPI(g *echo.Group, mailSvc core.EmailService) {
	api := contactApi{mailSvc: mailSvc}
	g.POST("/contact", api.submit)
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (cr *ContactRequest) Validate() error {
	cr.Name = core.CleanString(cr.Name)
	cr.Email = core.CleanString(cr.Email, true /* lower */)
	cr.Subject = core.CleanString(cr.Subject)
	return core.Validate.Struct(cr)
}

// submit relays the visitor message to the configured contact address, with
// Reply-To pointing back at the visitor.
func (api *contactApi) submit(ctx echo.Context) error {
	var data ContactRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	api.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{core.Conf.ContactEmail},
		ReplyTo: &mail.Address{Name: data.Name, Address: data.Email},
		Subject: data.Subject,
		BodyStr: data.Message,
	})
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Message sent successfully."})
}

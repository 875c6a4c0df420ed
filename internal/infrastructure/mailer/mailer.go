// Package mailer envía avisos de vencimiento a pacientes vía SMTP.
package mailer

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/tu-usuario/farmacia-api/internal/application/prescription"
	"github.com/tu-usuario/farmacia-api/internal/domain/alerting"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/pkg/config"
	"github.com/tu-usuario/farmacia-api/pkg/logger"
)

var _ prescription.Notifier = (*Mailer)(nil)

// Mailer implementa prescription.Notifier con gomail. Si no hay servidor
// SMTP configurado solo deja registro en el log, así los entornos de
// desarrollo no necesitan credenciales de correo.
type Mailer struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

func New(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// NotifyDispensed envía al paciente el aviso de medicamentos vencidos o por
// vencer incluidos en la prescripción dispensada.
func (m *Mailer) NotifyDispensed(patient *entity.Patient, p *entity.Prescription, alerts []alerting.ExpiryAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	if patient.Email == "" {
		m.log.Debug().
			Str("patient_id", patient.ID).
			Str("prescription_id", p.ID).
			Msg("paciente sin email, aviso de vencimiento omitido")
		return nil
	}

	subject, body := buildMessage(patient, p, alerts)

	if !m.cfg.Enabled() {
		m.log.Info().
			Str("patient_email", patient.Email).
			Str("prescription_id", p.ID).
			Int("alertas", len(alerts)).
			Msg("SMTP no configurado, aviso de vencimiento solo en log")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", patient.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar aviso de vencimiento: %w", err)
	}

	m.log.Info().
		Str("patient_email", patient.Email).
		Str("prescription_id", p.ID).
		Msg("aviso de vencimiento enviado")
	return nil
}

func buildMessage(patient *entity.Patient, p *entity.Prescription, alerts []alerting.ExpiryAlert) (subject, body string) {
	subject = "Aviso de vencimiento de medicamentos - Prescripción " + p.ID

	var b strings.Builder
	fmt.Fprintf(&b, "Estimado/a %s,\n\n", patient.Name)
	b.WriteString("Algunos medicamentos de su prescripción presentan alertas de vencimiento:\n\n")
	for _, a := range alerts {
		switch a.AlertType {
		case alerting.AlertTypeExpired:
			fmt.Fprintf(&b, "  - %s (lote %s): VENCIDO hace %d día(s)\n",
				a.ProductName, a.Batch, -a.DaysToExpiry)
		default:
			fmt.Fprintf(&b, "  - %s (lote %s): vence en %d día(s) (%s)\n",
				a.ProductName, a.Batch, a.DaysToExpiry, a.Expiry.Format("02/01/2006"))
		}
	}
	b.WriteString("\nPor favor consulte a su farmacéutico antes de consumirlos.\n")
	return subject, b.String()
}

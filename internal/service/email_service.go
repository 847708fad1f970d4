package service

import (
	"fmt"
	"time"

	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

func NewEmailService(smtpHost string, smtpPort int, username, password string) *EmailService {
	return &EmailService{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
	}
}

// SendWelcomeEmail 发送注册欢迎邮件
func (s *EmailService) SendWelcomeEmail(email, username string) error {
	subject := "Welcome to Instagram Clone"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your account has been created. Start sharing your photos!</p>", username)
	return s.sendEmail(email, subject, body)
}

func (s *EmailService) newMessage(to, subject, body string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = s.smtpPort == 465

	if err := d.DialAndSend(s.newMessage(to, subject, body)); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}

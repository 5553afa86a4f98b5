package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	amqp "github.com/streadway/amqp"
)

const otpQueue = "otp_dispatch"

// Client holds the RabbitMQ connection and channel used for OTP dispatch.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// OTPMessage is the payload handed to the SMS gateway worker.
type OTPMessage struct {
	Phone       string    `json:"phone"`
	Code        string    `json:"code"`
	RequestedAt time.Time `json:"requestedAt"`
}

// NewClient connects to RabbitMQ, opens a channel and declares the OTP
// dispatch queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		otpQueue, // name
		true,     // durable
		false,    // delete when unused
		false,    // exclusive
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", otpQueue, err)
	}

	log.Info().Str("queue", otpQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishOTP enqueues a verification code for SMS delivery. The message is
// persistent so codes survive a broker restart within their validity window.
func (c *Client) PublishOTP(phone, code string) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(OTPMessage{
		Phone:       phone,
		Code:        code,
		RequestedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal OTP message: %w", err)
	}

	err = c.channel.Publish(
		"",       // exchange: default
		otpQueue, // routing key: the queue name
		false,    // mandatory
		false,    // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish OTP message: %w", err)
	}

	log.Debug().Str("phone", phone).Msg("OTP dispatch message published")
	return nil
}

// ConsumeOTPDispatch starts a consumer goroutine delivering OTP dispatch
// messages to the handler. Messages are acked only after the handler
// succeeds; failures are nacked back onto the queue.
func (c *Client) ConsumeOTPDispatch(messageHandler func(msg OTPMessage) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		otpQueue, // queue
		"",       // consumer tag
		false,    // auto-ack: manual acknowledgement
		false,    // exclusive
		false,    // no-local
		false,    // no-wait
		nil,      // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var otp OTPMessage
			if err := json.Unmarshal(msg.Body, &otp); err != nil {
				log.Error().Err(err).Msg("discarding malformed OTP message")
				// Malformed payloads can never succeed; drop without requeue.
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Error().Err(nackErr).Msg("failed to nack malformed message")
				}
				continue
			}
			if err := messageHandler(otp); err != nil {
				log.Error().Err(err).Str("phone", otp.Phone).Msg("OTP delivery failed, requeueing")
				if nackErr := msg.Nack(false, true); nackErr != nil {
					log.Error().Err(nackErr).Msg("failed to nack message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Error().Err(ackErr).Msg("failed to ack message")
			}
		}
	}()

	return nil
}

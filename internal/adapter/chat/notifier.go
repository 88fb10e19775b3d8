package chat

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

const (
	commandExchange = "chat.commands"
	sendRoutingKey  = "chat.send"
	sendQueue       = "chat.send.q"
)

// actionDTO is one inline button on an outbound message. The token is
// opaque; the gateway echoes it back verbatim in a callback event.
type actionDTO struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// sendCommand is the wire shape consumed by the chat gateway. Exactly
// one of Text/ImagePNG/ImageRef carries the payload body; Choices and
// Actions are mutually exclusive decorations.
type sendCommand struct {
	To       string      `json:"to"`
	Text     string      `json:"text,omitempty"`
	Caption  string      `json:"caption,omitempty"`
	ImagePNG string      `json:"image_png,omitempty"` // base64
	ImageRef string      `json:"image_ref,omitempty"` // gateway-side file id
	Choices  []string    `json:"choices,omitempty"`
	Actions  []actionDTO `json:"actions,omitempty"`
}

// AMQPNotifier publishes outbound chat commands for the gateway to
// deliver. It implements usecase.Notifier.
type AMQPNotifier struct {
	ch *amqp.Channel
}

// NewAMQPNotifier sets up the exchange, queue, and binding once at startup.
func NewAMQPNotifier(ch *amqp.Channel) (*AMQPNotifier, error) {
	if err := ch.ExchangeDeclare(
		commandExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		sendQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, sendRoutingKey, commandExchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &AMQPNotifier{ch: ch}, nil
}

func (n *AMQPNotifier) SendText(ctx context.Context, to, text string) error {
	return n.publish(ctx, sendCommand{To: to, Text: text})
}

func (n *AMQPNotifier) SendTextWithChoices(ctx context.Context, to, text string, choices []string) error {
	return n.publish(ctx, sendCommand{To: to, Text: text, Choices: choices})
}

func (n *AMQPNotifier) SendTextWithActions(ctx context.Context, to, text string, actions []usecase.Action) error {
	return n.publish(ctx, sendCommand{To: to, Text: text, Actions: toActionDTOs(actions)})
}

func (n *AMQPNotifier) SendImage(ctx context.Context, to string, img usecase.Image, caption string) error {
	cmd := sendCommand{To: to, Caption: caption}
	fillImage(&cmd, img)
	return n.publish(ctx, cmd)
}

func (n *AMQPNotifier) SendImageWithActions(ctx context.Context, to string, img usecase.Image, caption string, actions []usecase.Action) error {
	cmd := sendCommand{To: to, Caption: caption, Actions: toActionDTOs(actions)}
	fillImage(&cmd, img)
	return n.publish(ctx, cmd)
}

func (n *AMQPNotifier) publish(ctx context.Context, cmd sendCommand) error {
	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Body:         body,
	}

	if err := n.ch.PublishWithContext(ctx, commandExchange, sendRoutingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func fillImage(cmd *sendCommand, img usecase.Image) {
	if img.Ref != "" {
		cmd.ImageRef = img.Ref
		return
	}
	cmd.ImagePNG = base64.StdEncoding.EncodeToString(img.PNG)
}

func toActionDTOs(actions []usecase.Action) []actionDTO {
	out := make([]actionDTO, 0, len(actions))
	for _, a := range actions {
		out = append(out, actionDTO{Label: a.Label, Token: a.Token})
	}
	return out
}

var _ usecase.Notifier = (*AMQPNotifier)(nil)

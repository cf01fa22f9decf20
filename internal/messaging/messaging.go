// Package messaging carries daily portions to translators. Each delivery
// method is a Deliverable implementation: adding a channel means adding a
// variant and an implementation, not extending a conditional chain. The
// Transport dispatches on the user's preferred method.
//
// Ordinary delivery failures are signaled through the returned boolean;
// errors are reserved for configuration problems such as a missing contact
// field or an unknown delivery method.
package messaging

import (
	"context"
	"fmt"

	"github.com/yshymko/peredai/internal/model"
)

// Deliverable sends one daily portion over a single channel.
type Deliverable interface {
	Method() model.DeliveryMethod
	Deliver(ctx context.Context, user *model.User, textTitle string, sentences []string, indices []int) (bool, error)
}

// Transport routes a send to the channel matching the user's preferred
// delivery method.
type Transport struct {
	channels map[model.DeliveryMethod]Deliverable
}

func NewTransport(channels ...Deliverable) *Transport {
	t := &Transport{channels: make(map[model.DeliveryMethod]Deliverable)}
	for _, ch := range channels {
		t.channels[ch.Method()] = ch
	}
	return t
}

// Send implements the dispatcher's outbound transport contract.
func (t *Transport) Send(ctx context.Context, user *model.User, textTitle string, sentences []string, indices []int) (bool, error) {
	ch, ok := t.channels[user.PreferredMethod]
	if !ok {
		return false, fmt.Errorf("%w: %q", model.ErrUnsupportedDeliveryMethod, user.PreferredMethod)
	}
	return ch.Deliver(ctx, user, textTitle, sentences, indices)
}

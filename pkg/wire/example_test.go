package wire_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/randalmurphal/eventwire/pkg/wire"
)

type Order struct {
	ID    string
	Steps []string
}

func step(name string) wire.Handler[*Order] {
	return wire.Sync(func(_ context.Context, o *Order) error {
		o.Steps = append(o.Steps, name)
		return nil
	})
}

func Example() {
	w := wire.New[*Order]()

	_, _ = w.On("order.created", step("reserve"))
	_, _ = w.Before("order.*", step("validate"))
	_, _ = w.After("order.created", step("receipt"))

	o := &Order{ID: "42"}
	if err := w.Emit(context.Background(), "order.created", o); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(o.Steps)
	// Output: [validate reserve receipt]
}

func ExampleWire_Skip() {
	w := wire.New[*Order]()

	_, _ = w.On("order.*", step("audit"), wire.WithName("audit"))
	_, _ = w.On("order.created", step("reserve"))
	_ = w.Skip("order.*", "audit")

	o := &Order{}
	_ = w.Emit(context.Background(), "order.created", o)
	fmt.Println(o.Steps)
	// Output: [reserve]
}

func ExampleWithEnsure() {
	w := wire.New[*Order]()

	_, _ = w.On("order.created", wire.Sync(func(context.Context, *Order) error {
		return errors.New("out of stock")
	}))
	_, _ = w.On("order.created", step("reserve"))
	_, _ = w.After("order.created", step("release-lock"), wire.WithEnsure())

	o := &Order{}
	err := w.Emit(context.Background(), "order.created", o)
	fmt.Println(o.Steps)
	fmt.Println(errors.Unwrap(err))
	// Output:
	// [release-lock]
	// out of stock
}

func ExampleAsync() {
	w := wire.New[*Order]()

	_, _ = w.On("order.created", wire.Async(func(_ context.Context, o *Order, done func(error)) {
		go func() {
			o.Steps = append(o.Steps, "stored")
			done(nil)
		}()
	}))

	o := &Order{}
	_ = w.Emit(context.Background(), "order.created", o)
	fmt.Println(o.Steps)
	// Output: [stored]
}

package unitconv_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/unitconv"
	"github.com/aretw0/unitconv/pkg/domain"
)

func ExampleConverter_NewSession() {
	c := unitconv.New()
	s := c.NewSession()

	s.OnInputChanged("100")
	fmt.Println(s.CurrentState().Result)

	s.OnModeSelected(domain.ModeTemperature)
	fmt.Println(s.CurrentState().Result)

	s.OnModeSelected(domain.ModeWeight)
	fmt.Println(s.CurrentState().Result)
	// Output:
	// 100000.0 Meters
	// 38 °C
	// 0.1 Kilograms
}

func ExampleConverter_Convert() {
	c := unitconv.New()

	fmt.Println(c.Convert("212", domain.ModeTemperature))
	fmt.Println(c.Convert("1000", domain.ModeWeight))
	fmt.Println(c.Convert("not a number", domain.ModeDistance))
	// Output:
	// 100 °C
	// 1.0 Kilograms
	// 0.0 Meters
}

func ExampleConverter_Start() {
	c := unitconv.New()
	ctx := context.Background()

	if _, err := c.Start(ctx, "kitchen"); err != nil {
		log.Fatal(err)
	}
	if _, err := c.InputChanged(ctx, "kitchen", "350"); err != nil {
		log.Fatal(err)
	}
	state, err := c.ModeSelected(ctx, "kitchen", domain.ModeTemperature)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(state.Input, state.Mode, state.Result, state.Revision)
	// Output:
	// 350 Temperature 177 °C 2
}

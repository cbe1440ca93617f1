package mutate

// Toggleable is the generic widget surface the presets work with.
type Toggleable interface {
	Control
	SetVisible(visible bool)
	SetEnabled(enabled bool)
}

func SetVisible(c Toggleable, visible bool) Mutation[Toggleable] {
	return New(c, func(c Toggleable) error {
		c.SetVisible(visible)
		return nil
	})
}

func SetEnabled(c Toggleable, enabled bool) Mutation[Toggleable] {
	return New(c, func(c Toggleable) error {
		c.SetEnabled(enabled)
		return nil
	})
}

func SetVisibleAndEnabled(c Toggleable, visible, enabled bool) Mutation[Toggleable] {
	return New(c, func(c Toggleable) error {
		c.SetVisible(visible)
		c.SetEnabled(enabled)
		return nil
	})
}

package xmlbind

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"xmlbind-generator/internal/match"
)

// Config is the runtime configuration consulted by adapters. It is safe for concurrent
// use; registrations usually happen once before any reading or writing.
type Config struct {
	// ExceptionOnUnreadXML makes unmapped attributes and elements fail the call.
	// Unmapped input is skipped either way; xmlns attributes are always ignored.
	ExceptionOnUnreadXML bool

	mu             sync.RWMutex
	adapters       map[string]TypeAdapter
	converters     map[string]Converter
	typeConverters map[string]Converter
}

// Option configures a Config.
type Option func(*Config)

// WithExceptionOnUnreadXML sets Config.ExceptionOnUnreadXML.
func WithExceptionOnUnreadXML(enabled bool) Option {
	return func(c *Config) { c.ExceptionOnUnreadXML = enabled }
}

// WithConverter registers a custom converter under name.
func WithConverter(name string, conv Converter) Option {
	return func(c *Config) { c.converters[name] = conv }
}

// WithTypeConverter registers the converter used for values of typeName.
func WithTypeConverter(typeName string, conv Converter) Option {
	return func(c *Config) { c.typeConverters[typeName] = conv }
}

// WithTypeAdapter registers the adapter of typeName.
func WithTypeAdapter(typeName string, adapter TypeAdapter) Option {
	return func(c *Config) { c.adapters[typeName] = adapter }
}

// NewConfig returns a Config that raises on unread input and knows the built-in type
// converters.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		ExceptionOnUnreadXML: true,
		adapters:             make(map[string]TypeAdapter),
		converters:           make(map[string]Converter),
		typeConverters:       builtinTypeConverters(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RegisterTypeAdapter adds or replaces the adapter of typeName.
func (c *Config) RegisterTypeAdapter(typeName string, adapter TypeAdapter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.adapters[typeName] = adapter
}

// RegisterConverter adds or replaces the custom converter name.
func (c *Config) RegisterConverter(name string, conv Converter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.converters[name] = conv
}

// RegisterTypeConverter adds or replaces the converter of typeName.
func (c *Config) RegisterTypeConverter(typeName string, conv Converter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.typeConverters[typeName] = conv
}

// TypeAdapter returns the adapter of typeName.
func (c *Config) TypeAdapter(typeName string) (TypeAdapter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.adapters[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s%s", ErrTypeAdapterNotFound, typeName,
			match.DidYouMean(typeName, slices.Collect(maps.Keys(c.adapters))))
	}

	return a, nil
}

// Converter returns the custom converter registered under name.
func (c *Config) Converter(name string) (Converter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	conv, ok := c.converters[name]
	if !ok {
		best, _ := match.Closest(name, slices.Collect(maps.Keys(c.converters)))
		return nil, &ConverterNotFoundError{Name: name, Suggestion: best}
	}

	return conv, nil
}

// TypeConverter returns the converter registered for typeName.
func (c *Config) TypeConverter(typeName string) (Converter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	conv, ok := c.typeConverters[typeName]
	if !ok {
		return nil, &ConverterNotFoundError{Name: typeName, Type: true}
	}

	return conv, nil
}

// Package config provides the configuration system for the reader.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (Config.Set)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← VREADER_*
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/vreader/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg := config.New()
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	scroll := cfg.Scroll()
//	fmt.Println(scroll.Duration)
//
// # Configuration Files
//
//	# ~/.config/vreader/config.toml
//	[reader]
//	padding_left = 2
//	watch = true
//
//	[scroll]
//	duration = "650ms"
//	lead_lines = 2
//
//	[theme]
//	highlight_bg = "#ffd866"
//
// # Error Handling
//
// Section accessors never fail: a value of the wrong type falls back to its
// default and is recorded in ConfigErrors. Validate reports values that have
// the right type but an unusable value.
package config

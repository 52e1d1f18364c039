// Package config provides local-first configuration for fr0st.
//
// Configuration lives in the working directory's .fr0st/ folder:
//
//	.fr0st/
//	├── config.yaml        # Main configuration
//	├── .gitignore         # Keeps logs out of git
//	└── fr0st.log          # Log file, when logging is enabled
//
// config.yaml holds render defaults and UI preferences:
//
//	default_backend: chaos
//	thumbnail_backend: sketch
//	poll_interval: 10ms
//	preview:
//	  quality: 2
//	  width: 160
//	  height: 120
//	thumbnail:
//	  quality: 1
//	  size: 48
//	render:
//	  quality: 50
//	  width: 640
//	  height: 480
//	  threads: 4
//	theme: frost
//	log_level: info
//	log_file: .fr0st/fr0st.log
//	output_dir: renders
//
// String values can reference environment variables using $VAR or ${VAR}:
//
//	output_dir: ${HOME}/flames
//
// Keys missing from the file keep their defaults. The file is validated on
// load, so a bad value fails early instead of surfacing as a broken render.
//
// Example usage:
//
//	manager := config.NewManager(".")
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := manager.Get()
//	fmt.Println("previews use", cfg.DefaultBackend)
//
//	// Update a setting
//	manager.Set("theme", "ember")
package config

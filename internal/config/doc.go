// Package config manages the user configuration file for ecume-admin.
//
// The configuration stores named API profiles (base URL and timeout) and
// application preferences in a YAML file under the platform config
// directory. Saves are atomic. The ECUME_API_URL environment variable,
// optionally loaded from a .env file, overrides the active profile's base
// URL at the command layer.
package config

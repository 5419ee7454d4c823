// Package config loads piecebook's configuration.
//
// The TOML file lives at ~/.config/piecebook/config.toml unless a path is
// given. A missing file is not an error; defaults are used instead:
//
//	base_url        = "https://piecesapi-e6ceaydmdfd0hghx.canadacentral-01.azurewebsites.net"
//	locale          = "fr"
//	log_file        = "~/.local/share/piecebook/piecebook.log"
//	request_timeout = ""   # Go duration; empty means no timeout
//
// PIECEBOOK_BASE_URL and PIECEBOOK_LOCALE override the file. They may be set
// in the environment or in a .env file in the working directory; the
// environment wins over .env.
package config

// Command fruitsctl runs and manages the fruits server.
//
// The server renders HTML pages for listing, creating, editing and deleting
// fruit records kept in MongoDB, PostgreSQL or SQLite.
//
// # Quick Start
//
//	export DATABASE_URL=mongodb://localhost:27017/fruits
//	export PORT=3000
//
//	# Replace the collection with the starter set
//	fruitsctl seed
//
//	# Start the server
//	fruitsctl server
//
// # Environment Variables
//
//   - DATABASE_URL: mongodb://, postgres:// or sqlite:// connection URL
//   - PORT: Server port
//   - BIND_ADDRESS: Server bind address (default: all interfaces)
//   - FRUITS_LOG_LEVEL: Log level (debug, info, warn, error)
//   - FRUITS_VIEWS_DIR: Load templates from this directory
//   - FRUITS_WATCH_VIEWS: Reload templates from FRUITS_VIEWS_DIR on change
//   - FRUITS_CONFIG_PATH: Directory holding fruits.yml (default: /etc/fruits)
//
// A .env file in the working directory is read before any command runs.
package main

package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           transcribed API
// @version         1.0
// @description     HTTP API for offline audio transcription and audio format conversion.
//
// @contact.name   transcribed maintainers
// @contact.url    https://github.com/your-org/transcribed
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http

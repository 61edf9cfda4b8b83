// Package logger wraps zap with a global sugared logger and context helpers.
//
// Services take a context and log through it (InfoKV, ErrorKV, ...), so a
// scoped logger set with WithName or WithKV follows the call chain.
package logger

// Package diagnostic provides structured configuration-time diagnostics
// for the XML binding compiler.
//
// Diagnostics are collected while a field model is validated and compiled.
// Errors abort compilation of the type they are attached to; warnings and
// infos are reported but never fatal.
package diagnostic

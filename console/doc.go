// Copyright (c) Microsoft. All rights reserved.

// Package console implements the interactive side of the lab programs: the
// line prompt, the chat and agent conversation loops, and the printers for
// run steps and conversation logs.
package console

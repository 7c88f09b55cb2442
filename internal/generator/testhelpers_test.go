package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/implgen/internal/catalog"
	"github.com/toyz/implgen/internal/models"
)

const fixtureSource = `
package com.example.tasks;

import java.io.IOException;

public abstract class Task {
    protected Task();
    public abstract void run();
}

public class Holder {
    public static final int LIMIT;
    public final String name;
    public long counter;
    public char[] buffer;
    public Holder();
}

public class Connection {
    public Connection(int port, String host) throws IOException;
    public Connection(long timeout);
    private Connection();
    public final void close();
    public native int handle();
    protected synchronized void reset();
}

public class Singleton {
    private Singleton();
}

public class Hidden {
    protected Hidden(int seed);
    private Hidden();
}

public final class Sealed {
    public Sealed();
}

public class Bare {
}

public interface Overloads extends Comparable<Overloads> {
    void accept(Object value);
    void accept(String value);
    void accept(int value);
    int compareTo(Overloads other);
}

public interface Café {
    Café copy(Café other);
}

public class Outer {
    public Outer();

    public interface Listener {
        void onEvent(String name);
    }

    public static class Node extends Outer {
        public Node();
    }

    public static final class Frozen {
        public Frozen();
    }

    private static class Secret {
        public Secret();
    }
}
`

const fixtureYAML = `
package: com.example.tasks
types:
  - name: LocalWorker
    origin: local
    constructors:
      - modifiers: public
  - name: AnonymousWorker
    origin: anonymous
    constructors:
      - modifiers: public
`

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New()
	require.NoError(t, err)
	require.NoError(t, c.LoadDescriptor("tasks.jdesc", []byte(fixtureSource)))
	require.NoError(t, c.LoadYAML("workers.yaml", []byte(fixtureYAML)))
	return c
}

func lookup(t *testing.T, c *catalog.Catalog, name string) models.Type {
	t.Helper()
	typ, err := c.Lookup(name)
	require.NoError(t, err)
	return typ
}

func methodNames(methods []models.Method) []string {
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.Name)
	}
	return names
}

package runtime

import "lox/internal/lexer"

const initializerName = "init"

type Class struct {
	Name       string
	Superclass *Class
	methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	if methods == nil {
		methods = make(map[string]*Function)
	}
	return &Class{Name: name, Superclass: superclass, methods: methods}
}

func (c *Class) String() string { return c.Name }

// FindMethod looks name up on c, then up the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod(initializerName); ok {
		return init.Arity()
	}
	return 0
}

// Call instantiates the class, running init with args when one is defined.
func (c *Class) Call(ex Executor, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod(initializerName); ok {
		if _, err := init.Bind(instance).Call(ex, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

type Instance struct {
	class  *Class
	fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]Value)}
}

func (i *Instance) Class() *Class  { return i.class }
func (i *Instance) String() string { return i.class.Name + " instance" }

// Get reads a field, falling back to a method bound to i.
func (i *Instance) Get(name lexer.Token) (Value, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set writes a field on i, creating it if needed.
func (i *Instance) Set(name lexer.Token, value Value) {
	i.fields[name.Lexeme] = value
}
